package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/handler/sse"
	"wikiflow/internal/repository/memory"
	serviceAuth "wikiflow/internal/service/auth"
	serviceWiki "wikiflow/internal/service/wiki"
)

// fakeFeed serves fixed recent events and a pre-filled, closed live channel
type fakeFeed struct {
	recent       []audit.Event
	live         []audit.Event
	subscribeErr error
	recentLimit  int
}

func (f *fakeFeed) Recent(_ context.Context, _ string, limit int) ([]audit.Event, error) {
	f.recentLimit = limit
	return f.recent, nil
}

func (f *fakeFeed) Subscribe(_ context.Context, _ string) (<-chan audit.Event, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	ch := make(chan audit.Event, len(f.live))
	for _, e := range f.live {
		ch <- e
	}
	close(ch)
	return ch, nil
}

func newStreamRouter(t *testing.T, feed *fakeFeed) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := memory.NewSet(memory.NewStore())
	services := serviceWiki.SetupServices(repos, serviceAuth.NewRoleAuthorizer(), syncRecorder{repo: repos.Events}, logger)

	_, err := services.Spaces.CreateSpace(context.Background(), models.SystemCaller(), &wikiSvc.CreateSpaceRequest{Key: "ENG", Name: "Engineering"})
	require.NoError(t, err)

	return NewRouter(&Handlers{
		Health:   NewHealthHandler(nil),
		Space:    NewSpaceHandler(services.Spaces, nil, logger),
		Article:  NewArticleHandler(services.Articles, services.Versions, services.Comments, logger),
		Review:   NewReviewHandler(services.Reviews, logger),
		Tag:      NewTagHandler(services.Tags, logger),
		Search:   NewSearchHandler(services.Search, nil, logger),
		Activity: NewActivityStreamHandler(services.Spaces, feed, &sse.Config{KeepAliveInterval: time.Hour, ReplayLimit: 5}, logger),
	})
}

func streamEvent(id string) audit.Event {
	return audit.Event{ID: id, EventType: audit.ReviewApproved, SpaceKey: "ENG", IsPublic: true}
}

func TestStreamActivity(t *testing.T) {
	feed := &fakeFeed{
		recent: []audit.Event{streamEvent("evt-3"), streamEvent("evt-2")},
		live:   []audit.Event{streamEvent("evt-4")},
	}
	router := newStreamRouter(t, feed)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/ENG/activity/stream", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, 5, feed.recentLimit)

	body := rec.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: activity\n"))
	i2 := strings.Index(body, "id: evt-2")
	i3 := strings.Index(body, "id: evt-3")
	i4 := strings.Index(body, "id: evt-4")
	require.True(t, i2 >= 0 && i3 >= 0 && i4 >= 0, body)
	assert.Less(t, i2, i3, "replay is oldest first")
	assert.Less(t, i3, i4, "live events follow the replay")
}

func TestStreamActivity_NoReplay(t *testing.T) {
	feed := &fakeFeed{
		recent: []audit.Event{streamEvent("evt-old")},
		live:   []audit.Event{streamEvent("evt-new")},
	}
	router := newStreamRouter(t, feed)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/ENG/activity/stream?replay=false", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "evt-old")
	assert.Contains(t, rec.Body.String(), "id: evt-new")
}

func TestStreamActivity_Errors(t *testing.T) {
	t.Run("unknown space", func(t *testing.T) {
		router := newStreamRouter(t, &fakeFeed{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/NOPE/activity/stream", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("feed unavailable", func(t *testing.T) {
		router := newStreamRouter(t, &fakeFeed{subscribeErr: errors.New("connection refused")})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/ENG/activity/stream", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("route absent without a feed", func(t *testing.T) {
		mux := NewRouter(&Handlers{Health: NewHealthHandler(nil)})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/ENG/activity/stream", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
