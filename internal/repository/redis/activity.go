// Package redis keeps a Redis-backed activity feed of public audit events:
// one pub/sub channel per space plus a capped list of recent events.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"wikiflow/internal/domain/models/audit"
	auditRepo "wikiflow/internal/domain/repositories/audit"
)

// DefaultRecentLimit caps each space's recent-activity list
const DefaultRecentLimit = 100

const namespace = "wiki"

// ActivityChannel returns the pub/sub channel for a space: wiki:{spaceKey}:activity
func ActivityChannel(spaceKey string) string {
	return fmt.Sprintf("%s:%s:activity", namespace, spaceKey)
}

// RecentKey returns the list key for a space: wiki:{spaceKey}:recent
func RecentKey(spaceKey string) string {
	return fmt.Sprintf("%s:%s:recent", namespace, spaceKey)
}

// ActivityPublisher implements auditRepo.ActivityPublisher and
// auditRepo.ActivityFeed on Redis. Safe for concurrent use.
type ActivityPublisher struct {
	rdb         *goredis.Client
	recentLimit int64
	logger      *slog.Logger
}

var (
	_ auditRepo.ActivityPublisher = (*ActivityPublisher)(nil)
	_ auditRepo.ActivityFeed      = (*ActivityPublisher)(nil)
)

// NewActivityPublisher creates a publisher. recentLimit <= 0 uses DefaultRecentLimit.
func NewActivityPublisher(opts *goredis.Options, recentLimit int, logger *slog.Logger) *ActivityPublisher {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &ActivityPublisher{
		rdb:         goredis.NewClient(opts),
		recentLimit: int64(recentLimit),
		logger:      logger,
	}
}

// NewActivityPublisherFromURL parses a redis:// URL
func NewActivityPublisherFromURL(url string, logger *slog.Logger) (*ActivityPublisher, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewActivityPublisher(opts, DefaultRecentLimit, logger), nil
}

// Ping verifies Redis connectivity
func (p *ActivityPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *ActivityPublisher) Close() error {
	return p.rdb.Close()
}

// Publish pushes a public event to its space's channel and recent list.
// Non-public events are skipped.
func (p *ActivityPublisher) Publish(ctx context.Context, event *audit.Event) error {
	if !event.IsPublic || event.SpaceKey == "" {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}

	key := RecentKey(event.SpaceKey)
	_, err = p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, p.recentLimit-1)
		pipe.Publish(ctx, ActivityChannel(event.SpaceKey), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish activity event: %w", err)
	}

	p.logger.Debug("activity published", "event_id", event.ID, "space_key", event.SpaceKey)
	return nil
}

// Recent returns the newest events of a space, newest first. Entries that
// fail to decode are skipped.
func (p *ActivityPublisher) Recent(ctx context.Context, spaceKey string, limit int) ([]audit.Event, error) {
	if limit <= 0 || int64(limit) > p.recentLimit {
		limit = int(p.recentLimit)
	}

	raw, err := p.rdb.LRange(ctx, RecentKey(spaceKey), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent activity: %w", err)
	}

	events := make([]audit.Event, 0, len(raw))
	for _, item := range raw {
		var e audit.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			p.logger.Warn("skipping undecodable activity entry", "space_key", spaceKey, "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Subscribe listens on the space's channel until ctx ends
func (p *ActivityPublisher) Subscribe(ctx context.Context, spaceKey string) (<-chan audit.Event, error) {
	sub := p.rdb.Subscribe(ctx, ActivityChannel(spaceKey))

	// Wait for the subscription to be confirmed so no publish is missed
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to activity: %w", err)
	}

	out := make(chan audit.Event)
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var e audit.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					p.logger.Warn("skipping undecodable activity message", "space_key", spaceKey, "error", err)
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	p.logger.Debug("activity subscription opened", "space_key", spaceKey)
	return out, nil
}
