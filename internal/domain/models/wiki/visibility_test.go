package wiki

import (
	"testing"

	"wikiflow/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestVisibility_Statuses(t *testing.T) {
	tests := []struct {
		name            string
		role            models.Role
		includeArchived bool
		want            []ArticleStatus
	}{
		{name: "viewer", role: models.RoleViewer, want: []ArticleStatus{StatusPublished}},
		{name: "viewer cannot widen", role: models.RoleViewer, includeArchived: true, want: []ArticleStatus{StatusPublished}},
		{name: "unknown role is restricted", role: models.Role("GUEST"), want: []ArticleStatus{StatusPublished}},
		{name: "editor", role: models.RoleEditor, want: []ArticleStatus{StatusDraft, StatusInReview, StatusPublished}},
		{name: "editor with archived", role: models.RoleEditor, includeArchived: true, want: AllStatuses},
		{name: "admin with archived", role: models.RoleAdmin, includeArchived: true, want: AllStatuses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vis := NewVisibility(models.NewCaller("u", tt.role), tt.includeArchived)
			assert.Equal(t, tt.want, vis.Statuses())
		})
	}
}

func TestVisibility_StatusesIsACopy(t *testing.T) {
	vis := NewVisibility(models.NewCaller("u", models.RoleAdmin), true)
	statuses := vis.Statuses()
	statuses[0] = "MUTATED"
	assert.Equal(t, StatusDraft, AllStatuses[0])
}

func TestVisibility_CanSeeVersion(t *testing.T) {
	published := &Article{Status: StatusPublished, CurrentVersionNo: 2}
	draft := &Article{Status: StatusDraft, CurrentVersionNo: 3}

	viewer := NewVisibility(models.NewCaller("v", models.RoleViewer), false)
	editor := NewVisibility(models.NewCaller("e", models.RoleEditor), false)

	assert.True(t, viewer.CanSeeVersion(published, 1))
	assert.True(t, viewer.CanSeeVersion(published, 2))
	assert.False(t, viewer.CanSeeVersion(published, 3))
	assert.False(t, viewer.CanSeeVersion(published, 0))
	assert.False(t, viewer.CanSeeVersion(draft, 1))
	assert.False(t, viewer.CanSeeVersion(nil, 1))

	assert.True(t, editor.CanSeeVersion(draft, 3))
	assert.True(t, editor.CanSeeVersion(published, 3), "unrestricted callers are not capped")

	assert.True(t, viewer.PublicEventsOnly())
	assert.False(t, editor.PublicEventsOnly())
}

func TestParseArticleStatus(t *testing.T) {
	s, ok := ParseArticleStatus(" in_review ")
	assert.True(t, ok)
	assert.Equal(t, StatusInReview, s)

	_, ok = ParseArticleStatus("deleted")
	assert.False(t, ok)
}
