package audit

import (
	"context"

	"wikiflow/internal/domain/models/audit"
)

// EventRepository stores audit events. Events are never updated or deleted.
type EventRepository interface {
	Create(ctx context.Context, event *audit.Event) error

	// Search returns matching events newest first plus the total match count
	Search(ctx context.Context, filter *audit.Filter) ([]audit.Event, int, error)
}

// ActivityPublisher pushes stored events to live subscribers
type ActivityPublisher interface {
	Publish(ctx context.Context, event *audit.Event) error
}

// ActivityFeed reads the live activity of a space. Only public events reach it.
type ActivityFeed interface {
	// Recent returns up to limit events, newest first
	Recent(ctx context.Context, spaceKey string, limit int) ([]audit.Event, error)

	// Subscribe delivers events as they are published. The channel is closed
	// once ctx ends or the subscription fails.
	Subscribe(ctx context.Context, spaceKey string) (<-chan audit.Event, error)
}
