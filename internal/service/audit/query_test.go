package audit

import (
	"context"
	"strings"
	"testing"
	"time"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	"wikiflow/internal/domain/services"
	"wikiflow/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvents(t *testing.T) services.AuditQueryService {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	events := memory.NewEventRepository(store)
	spaces := memory.NewSpaceRepository(store)

	require.NoError(t, spaces.Create(ctx, &wiki.Space{Key: "eng", Name: "Engineering"}))
	require.NoError(t, spaces.Create(ctx, &wiki.Space{Key: "ops", Name: "Operations"}))

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	articleID := testArticleID
	fixtures := []audit.Event{
		{EventType: audit.SpaceCreated, EntityType: audit.EntitySpace, EntityID: "eng", SpaceKey: "eng", Actor: "root", IsPublic: true},
		{EventType: audit.ArticleCreated, EntityType: audit.EntityArticle, EntityID: articleID, SpaceKey: "eng", ArticleID: &articleID, Actor: "alice"},
		{EventType: audit.ReviewApproved, EntityType: audit.EntityReviewRequest, EntityID: "r1", SpaceKey: "eng", ArticleID: &articleID, Actor: "root", IsPublic: true},
		{EventType: audit.SpaceCreated, EntityType: audit.EntitySpace, EntityID: "ops", SpaceKey: "ops", Actor: "root", IsPublic: true},
	}
	for i := range fixtures {
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, events.Create(ctx, &fixtures[i]))
	}

	return NewQueryService(events, spaces, discardLogger())
}

const testArticleID = "5f0c1f7e-3a8e-4d8e-9a51-2b7f0c6d9e14"

func TestQuery_Search(t *testing.T) {
	svc := seedEvents(t)
	ctx := context.Background()
	editor := models.NewCaller("alice", models.RoleEditor)
	viewer := models.NewCaller("bob", models.RoleViewer)

	t.Run("newest first", func(t *testing.T) {
		page, err := svc.Search(ctx, editor, &services.AuditSearchRequest{})
		require.NoError(t, err)
		require.Len(t, page.Items, 4)
		assert.Equal(t, "ops", page.Items[0].EntityID)
		assert.Equal(t, "eng", page.Items[3].EntityID)
	})

	t.Run("viewer sees public events only", func(t *testing.T) {
		page, err := svc.Search(ctx, viewer, &services.AuditSearchRequest{SpaceKey: "eng"})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalCount)
		for _, e := range page.Items {
			assert.True(t, e.IsPublic)
		}
	})

	t.Run("filters combine", func(t *testing.T) {
		page, err := svc.Search(ctx, editor, &services.AuditSearchRequest{
			ArticleID: strings.ToUpper(testArticleID),
			EventType: "review_approved",
		})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "r1", page.Items[0].EntityID)
	})

	t.Run("time range", func(t *testing.T) {
		page, err := svc.Search(ctx, editor, &services.AuditSearchRequest{
			From: "2026-01-01T12:01:00Z",
			To:   "2026-01-01T12:02:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalCount)
	})

	t.Run("paging", func(t *testing.T) {
		page, err := svc.Search(ctx, editor, &services.AuditSearchRequest{Page: models.PageRequest{Page: 1, Size: 3}})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 4, page.TotalCount)
		assert.False(t, page.HasMore)
	})
}

func TestQuery_SearchRejectsBadFilters(t *testing.T) {
	svc := seedEvents(t)
	ctx := context.Background()
	editor := models.NewCaller("alice", models.RoleEditor)

	bad := []services.AuditSearchRequest{
		{EventType: "ARTICLE_EXPLODED"},
		{EntityType: "PLANET"},
		{From: "yesterday"},
		{From: "2026-02-01T00:00:00Z", To: "2026-01-01T00:00:00Z"},
		{ArticleID: "foo"},
		{ActorID: "not-a-uuid"},
		{ArticleID: testArticleID, ActorID: "42"},
	}
	for _, req := range bad {
		req := req
		_, err := svc.Search(ctx, editor, &req)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", req)
	}
}

func TestQuery_SpaceActivity(t *testing.T) {
	svc := seedEvents(t)
	ctx := context.Background()

	page, err := svc.SpaceActivity(ctx, models.NewCaller("alice", models.RoleEditor), "eng", models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)

	page, err = svc.SpaceActivity(ctx, models.NewCaller("bob", models.RoleViewer), "eng", models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)

	_, err = svc.SpaceActivity(ctx, models.SystemCaller(), "missing", models.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
