package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// TagRepository implements wikiRepo.TagRepository in memory
type TagRepository struct {
	store *Store
}

// NewTagRepository creates a new tag repository
func NewTagRepository(store *Store) wikiRepo.TagRepository {
	return &TagRepository{store: store}
}

func compareTagNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func (r *TagRepository) Create(ctx context.Context, tag *wiki.Tag) error {
	return r.store.do(ctx, func(d *dataset) error {
		for _, existing := range d.tags {
			if strings.EqualFold(existing.Name, tag.Name) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("tag '%s' already exists", tag.Name),
					ResourceType: "tag",
					ResourceID:   existing.ID,
				}
			}
		}
		tag.ID = uuid.NewString()
		d.tags[tag.ID] = *tag
		return nil
	})
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*wiki.Tag, error) {
	var found *wiki.Tag
	err := r.store.do(ctx, func(d *dataset) error {
		t, ok := d.tags[id]
		if !ok {
			return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		found = &t
		return nil
	})
	return found, err
}

func (r *TagRepository) List(ctx context.Context, page models.PageRequest) ([]wiki.Tag, int, error) {
	var all []wiki.Tag
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, t := range d.tags {
			all = append(all, t)
		}
		return nil
	})
	slices.SortFunc(all, func(a, b wiki.Tag) int { return compareTagNames(a.Name, b.Name) })
	return paginate(all, page), len(all), nil
}

func (r *TagRepository) Attach(ctx context.Context, articleID, tagID string) (bool, error) {
	added := false
	err := r.store.do(ctx, func(d *dataset) error {
		key := articleTagKey{ArticleID: articleID, TagID: tagID}
		if _, ok := d.articleTags[key]; ok {
			return nil
		}
		d.articleTags[key] = time.Now().UTC()
		added = true
		return nil
	})
	return added, err
}

func (r *TagRepository) Detach(ctx context.Context, articleID, tagID string) (bool, error) {
	removed := false
	err := r.store.do(ctx, func(d *dataset) error {
		key := articleTagKey{ArticleID: articleID, TagID: tagID}
		if _, ok := d.articleTags[key]; ok {
			delete(d.articleTags, key)
			removed = true
		}
		return nil
	})
	return removed, err
}

func (r *TagRepository) ListByArticle(ctx context.Context, articleID string) ([]wiki.TagSummary, error) {
	tags := []wiki.TagSummary{}
	err := r.store.do(ctx, func(d *dataset) error {
		for key := range d.articleTags {
			if key.ArticleID != articleID {
				continue
			}
			if t, ok := d.tags[key.TagID]; ok {
				tags = append(tags, wiki.TagSummary{ID: t.ID, Name: t.Name})
			}
		}
		return nil
	})
	slices.SortFunc(tags, func(a, b wiki.TagSummary) int { return compareTagNames(a.Name, b.Name) })
	return tags, err
}
