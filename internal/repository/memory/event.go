package memory

import (
	"context"
	"slices"
	"strings"

	"wikiflow/internal/domain/models/audit"
	auditRepo "wikiflow/internal/domain/repositories/audit"

	"github.com/google/uuid"
)

// EventRepository implements auditRepo.EventRepository in memory
type EventRepository struct {
	store *Store
}

// NewEventRepository creates a new audit event repository
func NewEventRepository(store *Store) auditRepo.EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) Create(ctx context.Context, event *audit.Event) error {
	return r.store.do(ctx, func(d *dataset) error {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		stored := *event
		stored.Metadata = nil
		d.events = append(d.events, stored)
		return nil
	})
}

func (r *EventRepository) Search(ctx context.Context, filter *audit.Filter) ([]audit.Event, int, error) {
	var matched []audit.Event
	_ = r.store.do(ctx, func(d *dataset) error {
		for i := range d.events {
			if filter.Matches(&d.events[i]) {
				matched = append(matched, d.events[i])
			}
		}
		return nil
	})
	slices.SortStableFunc(matched, func(a, b audit.Event) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return slices.Clone(matched[start:end]), total, nil
}
