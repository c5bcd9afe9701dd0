package wiki

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	"wikiflow/internal/domain/repositories"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/repository/memory"
	serviceAuth "wikiflow/internal/service/auth"

	"github.com/stretchr/testify/require"
)

var (
	admin  = models.NewCaller("root", models.RoleAdmin)
	editor = models.NewCaller("alice", models.RoleEditor)
	viewer = models.NewCaller("bob", models.RoleViewer)
)

// captureRecorder keeps every recorded event in memory
type captureRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *captureRecorder) Record(event audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *captureRecorder) types() []audit.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]audit.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

func (r *captureRecorder) last() audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	repos    *repositories.Set
	svc      *Services
	recorder *captureRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := memory.NewSet(memory.NewStore())
	recorder := &captureRecorder{}
	logger := discardLogger()
	return &testEnv{
		repos:    repos,
		svc:      SetupServices(repos, serviceAuth.NewRoleAuthorizer(), recorder, logger),
		recorder: recorder,
	}
}

func (e *testEnv) space(t *testing.T, key string) *wiki.Space {
	t.Helper()
	space, err := e.svc.Spaces.CreateSpace(context.Background(), admin, &wikiSvc.CreateSpaceRequest{Key: key, Name: key + " space"})
	require.NoError(t, err)
	return space
}

func (e *testEnv) article(t *testing.T, spaceKey, title string) *wiki.ArticleDetail {
	t.Helper()
	a, err := e.svc.Articles.CreateArticle(context.Background(), editor, spaceKey, &wikiSvc.CreateArticleRequest{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return a
}

// published creates an article and takes it through review
func (e *testEnv) published(t *testing.T, spaceKey, title string) *wiki.ArticleDetail {
	t.Helper()
	ctx := context.Background()
	a := e.article(t, spaceKey, title)
	review, err := e.svc.Reviews.Submit(ctx, editor, a.ID)
	require.NoError(t, err)
	_, err = e.svc.Reviews.Approve(ctx, admin, review.ID)
	require.NoError(t, err)
	detail, err := e.svc.Articles.GetArticle(ctx, admin, a.ID, true)
	require.NoError(t, err)
	return detail
}
