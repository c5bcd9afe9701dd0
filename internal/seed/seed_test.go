package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	"wikiflow/internal/repository/memory"
	serviceAuth "wikiflow/internal/service/auth"
	serviceWiki "wikiflow/internal/service/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopRecorder struct{}

func (nopRecorder) Record(audit.Event) {}

func TestParseArticleFile(t *testing.T) {
	file, err := ParseArticleFile([]byte("---\ntitle: Runbook\ntags: [ops, howto]\npublish: true\n---\n\n# Steps\n1. Deploy\n"))
	require.NoError(t, err)
	assert.Equal(t, "Runbook", file.Title)
	assert.Equal(t, []string{"ops", "howto"}, file.Tags)
	assert.True(t, file.Publish)
	assert.Equal(t, "# Steps\n1. Deploy\n", file.Content)

	_, err = ParseArticleFile([]byte("# no frontmatter"))
	assert.Error(t, err)

	_, err = ParseArticleFile([]byte("---\ntitle: Open\n"))
	assert.Error(t, err)

	_, err = ParseArticleFile([]byte("---\ntags: [x]\n---\nbody"))
	assert.Error(t, err, "title is required")
}

func TestParseFixtures_ResolvesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "articles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "articles", "runbook.md"),
		[]byte("---\ntitle: Runbook\ntags: [ops]\npublish: true\n---\nSteps"), 0o644))

	f, err := ParseFixtures([]byte(`
spaces:
  - key: eng
    name: Engineering
articles:
  - space: eng
    file: articles/runbook.md
    tags: [howto]
`), dir)
	require.NoError(t, err)
	require.Len(t, f.Articles, 1)

	a := f.Articles[0]
	assert.Equal(t, "Runbook", a.Title)
	assert.Equal(t, "Steps", a.Content)
	assert.Equal(t, []string{"howto", "ops"}, a.Tags)
	assert.True(t, a.Publish)

	_, err = ParseFixtures([]byte("articles:\n  - title: No space\n    content: x\n"), dir)
	assert.Error(t, err)
}

func TestSeeder_Apply(t *testing.T) {
	repos := memory.NewSet(memory.NewStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := serviceWiki.SetupServices(repos, serviceAuth.NewRoleAuthorizer(), nopRecorder{}, logger)
	seeder := NewSeeder(services, repos.Users, logger)
	ctx := context.Background()

	fixtures := &Fixtures{
		Users:  []UserFixture{{Username: "alice", Role: "editor"}},
		Spaces: []SpaceFixture{{Key: "eng", Name: "Engineering"}},
		Tags:   []string{"HowTo"},
		Articles: []ArticleFixture{
			{Space: "eng", Author: "alice", Title: "Getting Started", Content: "v1", Edits: []string{"v2"}, Tags: []string{"howto"}, Publish: true},
			{Space: "eng", Title: "Draft Notes", Content: "wip"},
		},
	}

	res, err := seeder.Apply(ctx, fixtures)
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 1, Spaces: 1, Tags: 1, Articles: 2, Versions: 3, Published: 1}, res)

	user, err := repos.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)

	viewer := models.NewCaller("bob", models.RoleViewer)
	page, err := services.Articles.ListArticles(ctx, viewer, "eng", false, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "getting-started", page.Items[0].Slug)
	assert.Equal(t, wiki.StatusPublished, page.Items[0].Status)
	assert.Equal(t, 2, page.Items[0].CurrentVersionNo)

	detail, err := services.Articles.GetArticle(ctx, viewer, page.Items[0].ID, false)
	require.NoError(t, err)
	require.Len(t, detail.Tags, 1)
	assert.Equal(t, "HowTo", detail.Tags[0].Name)

	// Re-applying reuses spaces and tags
	again, err := seeder.Apply(ctx, &Fixtures{Spaces: fixtures.Spaces, Tags: fixtures.Tags})
	require.NoError(t, err)
	assert.Zero(t, again.Spaces)
	assert.Zero(t, again.Tags)
}

func TestSeeder_UnknownTag(t *testing.T) {
	repos := memory.NewSet(memory.NewStore())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := serviceWiki.SetupServices(repos, serviceAuth.NewRoleAuthorizer(), nopRecorder{}, logger)

	_, err := NewSeeder(services, repos.Users, logger).Apply(context.Background(), &Fixtures{
		Spaces:   []SpaceFixture{{Key: "eng", Name: "Engineering"}},
		Articles: []ArticleFixture{{Space: "eng", Title: "T", Content: "C", Tags: []string{"missing"}}},
	})
	assert.ErrorContains(t, err, "unknown tag")
}
