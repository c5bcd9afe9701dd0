package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiflow/internal/domain/models/audit"
)

// setupTestPublisher creates a publisher connected to a miniredis instance
func setupTestPublisher(t *testing.T, recentLimit int) (*ActivityPublisher, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewActivityPublisher(&goredis.Options{Addr: mr.Addr()}, recentLimit, logger)
	t.Cleanup(func() { p.Close() })

	return p, mr
}

func publicEvent(spaceKey, message string) *audit.Event {
	return &audit.Event{
		ID:         "evt-" + message,
		EventType:  audit.ReviewApproved,
		EntityType: audit.EntityReviewRequest,
		EntityID:   "rr-1",
		SpaceKey:   spaceKey,
		Actor:      "alice",
		Message:    message,
		IsPublic:   true,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "wiki:ENG:activity", ActivityChannel("ENG"))
	assert.Equal(t, "wiki:ENG:recent", RecentKey("ENG"))
}

func TestPing(t *testing.T) {
	p, _ := setupTestPublisher(t, 0)
	assert.NoError(t, p.Ping(context.Background()))
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("public event lands on the recent list", func(t *testing.T) {
		p, mr := setupTestPublisher(t, 0)

		require.NoError(t, p.Publish(ctx, publicEvent("ENG", "one")))

		items, err := mr.List(RecentKey("ENG"))
		require.NoError(t, err)
		require.Len(t, items, 1)

		var got audit.Event
		require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
		assert.Equal(t, "evt-one", got.ID)
		assert.Equal(t, audit.ReviewApproved, got.EventType)
	})

	t.Run("private event is skipped", func(t *testing.T) {
		p, mr := setupTestPublisher(t, 0)

		e := publicEvent("ENG", "hidden")
		e.IsPublic = false
		require.NoError(t, p.Publish(ctx, e))

		assert.False(t, mr.Exists(RecentKey("ENG")))
	})

	t.Run("recent list is capped newest first", func(t *testing.T) {
		p, mr := setupTestPublisher(t, 2)

		for _, msg := range []string{"a", "b", "c"} {
			require.NoError(t, p.Publish(ctx, publicEvent("ENG", msg)))
		}

		items, err := mr.List(RecentKey("ENG"))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Contains(t, items[0], `"evt-c"`)
		assert.Contains(t, items[1], `"evt-b"`)
	})

	t.Run("subscribers receive the event", func(t *testing.T) {
		p, mr := setupTestPublisher(t, 0)

		sub := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { sub.Close() })

		pubsub := sub.Subscribe(ctx, ActivityChannel("ENG"))
		t.Cleanup(func() { pubsub.Close() })
		_, err := pubsub.Receive(ctx)
		require.NoError(t, err)

		require.NoError(t, p.Publish(ctx, publicEvent("ENG", "live")))

		select {
		case msg := <-pubsub.Channel():
			assert.Contains(t, msg.Payload, `"evt-live"`)
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for activity message")
		}
	})
}

func TestNewActivityPublisherFromURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewActivityPublisherFromURL("not a url", logger)
	assert.Error(t, err)

	p, err := NewActivityPublisherFromURL("redis://localhost:6379/0", logger)
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	p, mr := setupTestPublisher(t, 0)

	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, p.Publish(ctx, publicEvent("ENG", msg)))
	}
	raw := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer raw.Close()
	require.NoError(t, raw.LPush(ctx, RecentKey("ENG"), "{not json").Err())

	events, err := p.Recent(ctx, "ENG", 3)
	require.NoError(t, err)
	require.Len(t, events, 2, "undecodable entry is skipped")
	assert.Equal(t, "evt-c", events[0].ID)
	assert.Equal(t, "evt-b", events[1].ID)

	empty, err := p.Recent(ctx, "OPS", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSubscribe(t *testing.T) {
	p, _ := setupTestPublisher(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := p.Subscribe(ctx, "ENG")
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), publicEvent("OPS", "elsewhere")))
	require.NoError(t, p.Publish(context.Background(), publicEvent("ENG", "live")))

	select {
	case e := <-events:
		assert.Equal(t, "evt-live", e.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity event")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel closes after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not close")
	}
}
