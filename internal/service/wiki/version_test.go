package wiki

import (
	"context"
	"sort"
	"sync"
	"testing"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVersion(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	a := env.article(t, "eng", "Doc")

	v, err := env.svc.Versions.AddVersion(ctx, editor, a.ID, &wikiSvc.AddVersionRequest{Content: "second"})
	require.NoError(t, err)
	assert.Equal(t, 2, v.VersionNo)
	assert.Equal(t, "alice", v.CreatedBy)

	detail, err := env.svc.Articles.GetArticle(ctx, editor, a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.CurrentVersionNo)
	require.NotNil(t, detail.Content)
	assert.Equal(t, "second", *detail.Content)

	ev := env.recorder.last()
	assert.Equal(t, audit.VersionAdded, ev.EventType)
	assert.Equal(t, audit.EntityVersion, ev.EntityType)
	assert.Equal(t, v.ID, ev.EntityID)
	assert.Equal(t, 2, ev.Metadata["versionNo"])
}

func TestAddVersion_Rejects(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	draft := env.article(t, "eng", "Draft")
	pub := env.published(t, "eng", "Published")

	_, err := env.svc.Versions.AddVersion(ctx, editor, pub.ID, &wikiSvc.AddVersionRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = env.svc.Versions.AddVersion(ctx, editor, draft.ID, &wikiSvc.AddVersionRequest{Content: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.Versions.AddVersion(ctx, viewer, draft.ID, &wikiSvc.AddVersionRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.svc.Versions.AddVersion(ctx, editor, "missing", &wikiSvc.AddVersionRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddVersion_ConcurrentNumbersAreGapless(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()
	a := env.article(t, "eng", "Doc")

	const writers = 20
	var wg sync.WaitGroup
	numbers := make(chan int, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := env.svc.Versions.AddVersion(ctx, editor, a.ID, &wikiSvc.AddVersionRequest{Content: "edit"})
			if assert.NoError(t, err) {
				numbers <- v.VersionNo
			}
		}()
	}
	wg.Wait()
	close(numbers)

	var got []int
	for n := range numbers {
		got = append(got, n)
	}
	sort.Ints(got)

	want := make([]int, writers)
	for i := range want {
		want[i] = i + 2
	}
	assert.Equal(t, want, got)

	page, err := env.svc.Versions.ListVersions(ctx, editor, a.ID, false, models.PageRequest{Size: 100})
	require.NoError(t, err)
	assert.Equal(t, writers+1, page.TotalCount)
	for i, v := range page.Items {
		assert.Equal(t, i+1, v.VersionNo)
	}
}

func TestVersionReads(t *testing.T) {
	env := newTestEnv(t)
	env.space(t, "eng")
	ctx := context.Background()

	draft := env.article(t, "eng", "Draft")
	_, err := env.svc.Versions.AddVersion(ctx, editor, draft.ID, &wikiSvc.AddVersionRequest{Content: "v2"})
	require.NoError(t, err)
	pub := env.published(t, "eng", "Public")

	v, err := env.svc.Versions.GetVersion(ctx, editor, draft.ID, 2, false)
	require.NoError(t, err)
	assert.Equal(t, "v2", v.Content)

	_, err = env.svc.Versions.GetVersion(ctx, editor, draft.ID, 3, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.Versions.GetVersion(ctx, editor, draft.ID, 0, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.Versions.GetVersion(ctx, viewer, draft.ID, 1, false)
	assert.ErrorIs(t, err, domain.ErrNotFound, "drafts are hidden from viewers")

	_, err = env.svc.Versions.ListVersions(ctx, viewer, draft.ID, false, models.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := env.svc.Versions.ListVersions(ctx, viewer, pub.ID, false, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].VersionNo)
}
