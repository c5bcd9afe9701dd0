package wiki

import (
	"context"
	"testing"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	env.space(t, "ops")
	ctx := context.Background()

	draft := env.article(t, "eng", "Deploy Guide")
	pub := env.published(t, "eng", "Deploy Checklist")
	env.article(t, "ops", "Deploy Elsewhere")
	byContent := env.article(t, "eng", "Runbook")
	_, err := env.svc.Versions.AddVersion(ctx, editor, byContent.ID, &wikiSvc.AddVersionRequest{Content: "how to DEPLOY safely"})
	require.NoError(t, err)

	ids := func(caller models.Caller, req *wikiSvc.SearchRequest) []string {
		page, err := env.svc.Search.Search(ctx, caller, req)
		require.NoError(t, err)
		out := make([]string, 0, len(page.Items))
		for _, a := range page.Items {
			out = append(out, a.ID)
		}
		return out
	}

	t.Run("editor matches title and latest content in one space", func(t *testing.T) {
		got := ids(editor, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "deploy"})
		assert.ElementsMatch(t, []string{draft.ID, pub.ID, byContent.ID}, got)
	})

	t.Run("viewer only sees published", func(t *testing.T) {
		got := ids(viewer, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "deploy", IncludeArchived: true})
		assert.Equal(t, []string{pub.ID}, got)
	})

	t.Run("archived hidden unless requested", func(t *testing.T) {
		_, err := env.svc.Articles.Archive(ctx, editor, draft.ID)
		require.NoError(t, err)

		got := ids(editor, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "guide"})
		assert.Empty(t, got)

		got = ids(editor, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "guide", IncludeArchived: true})
		assert.Equal(t, []string{draft.ID}, got)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got := ids(editor, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "%"})
		assert.Empty(t, got)
	})

	t.Run("blank query rejected", func(t *testing.T) {
		_, err := env.svc.Search.Search(ctx, editor, &wikiSvc.SearchRequest{SpaceKey: "eng", Query: "  "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown space", func(t *testing.T) {
		_, err := env.svc.Search.Search(ctx, editor, &wikiSvc.SearchRequest{SpaceKey: "nope", Query: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
