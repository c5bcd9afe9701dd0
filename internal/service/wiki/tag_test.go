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

func TestCreateTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tag, err := env.svc.Tags.CreateTag(ctx, editor, &wikiSvc.CreateTagRequest{Name: "  HowTo "})
	require.NoError(t, err)
	assert.Equal(t, "HowTo", tag.Name)

	_, err = env.svc.Tags.CreateTag(ctx, editor, &wikiSvc.CreateTagRequest{Name: "howto"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = env.svc.Tags.CreateTag(ctx, editor, &wikiSvc.CreateTagRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Tags.CreateTag(ctx, viewer, &wikiSvc.CreateTagRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := env.svc.Tags.ListTags(ctx, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}

func TestAttachDetachTag(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	a := env.article(t, "eng", "Doc")
	tag, err := env.svc.Tags.CreateTag(ctx, editor, &wikiSvc.CreateTagRequest{Name: "howto"})
	require.NoError(t, err)

	tags, err := env.svc.Tags.AttachTag(ctx, editor, a.ID, tag.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "howto", tags[0].Name)
	assert.Equal(t, audit.TagAddedToArticle, env.recorder.last().EventType)

	eventsBefore := len(env.recorder.types())
	tags, err = env.svc.Tags.AttachTag(ctx, editor, a.ID, tag.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Len(t, env.recorder.types(), eventsBefore, "repeat attach records nothing")

	detail, err := env.svc.Articles.GetArticle(ctx, editor, a.ID, false)
	require.NoError(t, err)
	require.Len(t, detail.Tags, 1)

	tags, err = env.svc.Tags.DetachTag(ctx, editor, a.ID, tag.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Equal(t, audit.TagRemovedFromArticle, env.recorder.last().EventType)

	eventsBefore = len(env.recorder.types())
	_, err = env.svc.Tags.DetachTag(ctx, editor, a.ID, tag.ID)
	require.NoError(t, err)
	assert.Len(t, env.recorder.types(), eventsBefore)

	_, err = env.svc.Tags.AttachTag(ctx, editor, a.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.svc.Tags.AttachTag(ctx, editor, "missing", tag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagEventPublicOnlyWhenPublished(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	draft := env.article(t, "eng", "Draft")
	pub := env.published(t, "eng", "Public")
	tag, err := env.svc.Tags.CreateTag(ctx, editor, &wikiSvc.CreateTagRequest{Name: "howto"})
	require.NoError(t, err)

	_, err = env.svc.Tags.AttachTag(ctx, editor, draft.ID, tag.ID)
	require.NoError(t, err)
	assert.False(t, env.recorder.last().IsPublic)

	_, err = env.svc.Tags.AttachTag(ctx, editor, pub.ID, tag.ID)
	require.NoError(t, err)
	assert.True(t, env.recorder.last().IsPublic)
}
