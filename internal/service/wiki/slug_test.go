package wiki

import (
	"context"
	"strings"
	"testing"

	"wikiflow/internal/config"
	"wikiflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple words", title: "Getting Started", want: "getting-started"},
		{name: "punctuation collapses", title: "Hello,   World!!", want: "hello-world"},
		{name: "leading and trailing noise", title: "  --Intro--  ", want: "intro"},
		{name: "diacritics stripped", title: "Café Crème Brûlée", want: "cafe-creme-brulee"},
		{name: "digits kept", title: "Release 2.0 notes", want: "release-2-0-notes"},
		{name: "no usable characters", title: "!!!", want: "article"},
		{name: "non latin only", title: "日本語", want: "article"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	slug := Slugify(strings.Repeat("word ", 100))
	assert.LessOrEqual(t, len(slug), config.MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestWithSuffix_FitsLimit(t *testing.T) {
	base := strings.Repeat("a", config.MaxSlugLength)
	got := withSuffix(base, 12)
	assert.Len(t, got, config.MaxSlugLength)
	assert.True(t, strings.HasSuffix(got, "-12"))
}

func TestSlugAllocator_Allocate(t *testing.T) {
	env := newTestEnv(t)
	space := env.space(t, "eng")
	allocator := NewSlugAllocator(env.repos.Articles)
	ctx := context.Background()

	slug, err := allocator.Allocate(ctx, space.ID, "intro")
	require.NoError(t, err)
	assert.Equal(t, "intro", slug)

	env.article(t, "eng", "Intro")
	slug, err = allocator.Allocate(ctx, space.ID, "intro")
	require.NoError(t, err)
	assert.Equal(t, "intro-2", slug)

	env.article(t, "eng", "Intro")
	slug, err = allocator.Allocate(ctx, space.ID, "intro")
	require.NoError(t, err)
	assert.Equal(t, "intro-3", slug)
}

func TestCreateArticle_SlugsUniquePerSpace(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	env.space(t, "ops")

	first := env.article(t, "eng", "Runbook")
	second := env.article(t, "eng", "Runbook")
	other := env.article(t, "ops", "Runbook")

	assert.Equal(t, "runbook", first.Slug)
	assert.Equal(t, "runbook-2", second.Slug)
	assert.Equal(t, "runbook", other.Slug)
}

func TestRetryOnConflict(t *testing.T) {
	logger := discardLogger()

	calls := 0
	err := retryOnConflict(context.Background(), logger, "test", 3, func() error {
		calls++
		if calls < 3 {
			return &domain.ConflictError{Message: "taken"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retryOnConflict(context.Background(), logger, "test", 2, func() error {
		calls++
		return &domain.ConflictError{Message: "taken"}
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 2, calls)

	calls = 0
	err = retryOnConflict(context.Background(), logger, "test", 5, func() error {
		calls++
		return domain.ErrNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, calls)
}
