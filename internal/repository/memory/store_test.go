package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecTx_RollsBackOnError(t *testing.T) {
	store := NewStore()
	repos := NewSet(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repos.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		require.NoError(t, repos.Spaces.Create(txCtx, &wiki.Space{Key: "eng", Name: "Eng"}))
		require.NoError(t, repos.Tags.Create(txCtx, &wiki.Tag{Name: "howto"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repos.Spaces.GetByKey(ctx, "eng")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	tags, total, err := repos.Tags.List(ctx, models.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Zero(t, total)
}

func TestExecTx_CommitsAndNests(t *testing.T) {
	store := NewStore()
	repos := NewSet(store)
	ctx := context.Background()

	err := repos.Tx.ExecTx(ctx, func(txCtx context.Context) error {
		if err := repos.Spaces.Create(txCtx, &wiki.Space{Key: "eng", Name: "Eng"}); err != nil {
			return err
		}
		// Nested units join the outer one instead of deadlocking
		return repos.Tx.ExecTx(txCtx, func(inner context.Context) error {
			return repos.Spaces.Create(inner, &wiki.Space{Key: "ops", Name: "Ops"})
		})
	})
	require.NoError(t, err)

	_, total, err := repos.Spaces.List(ctx, models.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestArticleRepository_UniqueSlugPerSpace(t *testing.T) {
	store := NewStore()
	repos := NewSet(store)
	ctx := context.Background()

	space := &wiki.Space{Key: "eng", Name: "Eng"}
	require.NoError(t, repos.Spaces.Create(ctx, space))

	now := time.Now()
	first := &wiki.Article{SpaceID: space.ID, Slug: "intro", Title: "Intro", Status: wiki.StatusDraft, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Articles.Create(ctx, first))

	dup := &wiki.Article{SpaceID: space.ID, Slug: "intro", Title: "Intro", Status: wiki.StatusDraft, CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, repos.Articles.Create(ctx, dup), domain.ErrConflict)

	got, err := repos.Articles.GetBySlug(ctx, space.ID, "intro")
	require.NoError(t, err)
	assert.Equal(t, "eng", got.SpaceKey)
}

func TestReviewRepository_OnePendingPerArticle(t *testing.T) {
	repos := NewSet(NewStore())
	ctx := context.Background()

	space := &wiki.Space{Key: "eng", Name: "Eng"}
	require.NoError(t, repos.Spaces.Create(ctx, space))
	now := time.Now()
	article := &wiki.Article{SpaceID: space.ID, Slug: "intro", Title: "Intro", Status: wiki.StatusInReview, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Articles.Create(ctx, article))

	first := &wiki.ReviewRequest{ArticleID: article.ID, Status: wiki.ReviewPending, RequestedBy: "alice", RequestedAt: now}
	require.NoError(t, repos.Reviews.Create(ctx, first))

	second := &wiki.ReviewRequest{ArticleID: article.ID, Status: wiki.ReviewPending, RequestedBy: "alice", RequestedAt: now}
	assert.ErrorIs(t, repos.Reviews.Create(ctx, second), domain.ErrConflict)

	exists, err := repos.Reviews.ExistsPending(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Once decided, a new PENDING request is allowed again
	first.Status = wiki.ReviewRejected
	require.NoError(t, repos.Reviews.Update(ctx, first))
	third := &wiki.ReviewRequest{ArticleID: article.ID, Status: wiki.ReviewPending, RequestedBy: "alice", RequestedAt: now}
	assert.NoError(t, repos.Reviews.Create(ctx, third))
}

func TestReviewRepository_UnknownArticle(t *testing.T) {
	repos := NewSet(NewStore())

	rr := &wiki.ReviewRequest{ArticleID: "missing", Status: wiki.ReviewPending, RequestedAt: time.Now()}
	assert.ErrorIs(t, repos.Reviews.Create(context.Background(), rr), domain.ErrNotFound)
}

func TestTagRepository_CaseInsensitiveNames(t *testing.T) {
	repos := NewSet(NewStore())
	ctx := context.Background()

	require.NoError(t, repos.Tags.Create(ctx, &wiki.Tag{Name: "HowTo"}))
	assert.ErrorIs(t, repos.Tags.Create(ctx, &wiki.Tag{Name: "howto"}), domain.ErrConflict)
}
