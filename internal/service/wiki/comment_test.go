package wiki

import (
	"context"
	"testing"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	a := env.article(t, "eng", "Doc")

	first, err := env.svc.Comments.AddComment(ctx, editor, a.ID, 1, &wikiSvc.AddCommentRequest{Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, "alice", first.CreatedBy)
	assert.Equal(t, 1, first.VersionNo)

	ev := env.recorder.last()
	assert.Equal(t, audit.CommentAdded, ev.EventType)
	assert.Equal(t, first.ID, ev.EntityID)
	assert.False(t, ev.IsPublic)

	_, err = env.svc.Comments.AddComment(ctx, admin, a.ID, 1, &wikiSvc.AddCommentRequest{Body: "second"})
	require.NoError(t, err)

	page, err := env.svc.Comments.ListComments(ctx, editor, a.ID, 1, false, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "first", page.Items[0].Body)
	assert.Equal(t, "second", page.Items[1].Body)

	detail, err := env.svc.Articles.GetArticle(ctx, editor, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.CommentCount)
}

func TestComments_Rejects(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	a := env.article(t, "eng", "Doc")

	_, err := env.svc.Comments.AddComment(ctx, editor, a.ID, 2, &wikiSvc.AddCommentRequest{Body: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.Comments.AddComment(ctx, editor, a.ID, 1, &wikiSvc.AddCommentRequest{Body: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Comments.AddComment(ctx, viewer, a.ID, 1, &wikiSvc.AddCommentRequest{Body: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.svc.Comments.ListComments(ctx, viewer, a.ID, 1, false, models.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComments_PublicOnPublishedArticle(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	pub := env.published(t, "eng", "Doc")

	_, err := env.svc.Comments.AddComment(ctx, editor, pub.ID, 1, &wikiSvc.AddCommentRequest{Body: "nice"})
	require.NoError(t, err)
	assert.True(t, env.recorder.last().IsPublic)

	page, err := env.svc.Comments.ListComments(ctx, viewer, pub.ID, 1, false, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}
