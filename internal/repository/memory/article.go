package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// ArticleRepository implements wikiRepo.ArticleRepository in memory
type ArticleRepository struct {
	store *Store
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(store *Store) wikiRepo.ArticleRepository {
	return &ArticleRepository{store: store}
}

// withSpaceKey fills the joined space key
func withSpaceKey(d *dataset, a wiki.Article) *wiki.Article {
	a.SpaceKey = d.spaces[a.SpaceID].Key
	return &a
}

func (r *ArticleRepository) Create(ctx context.Context, article *wiki.Article) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.spaces[article.SpaceID]; !ok {
			return fmt.Errorf("space %s: %w", article.SpaceID, domain.ErrNotFound)
		}
		for _, existing := range d.articles {
			if existing.SpaceID == article.SpaceID && existing.Slug == article.Slug {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("article slug '%s' already exists", article.Slug),
					ResourceType: "article",
					ResourceID:   existing.ID,
				}
			}
		}
		article.ID = uuid.NewString()
		stored := *article
		stored.SpaceKey = ""
		d.articles[article.ID] = stored
		article.SpaceKey = d.spaces[article.SpaceID].Key
		return nil
	})
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*wiki.Article, error) {
	var found *wiki.Article
	err := r.store.do(ctx, func(d *dataset) error {
		a, ok := d.articles[id]
		if !ok {
			return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
		}
		found = withSpaceKey(d, a)
		return nil
	})
	return found, err
}

// GetByIDForUpdate is GetByID: the unit of work already holds the store lock
func (r *ArticleRepository) GetByIDForUpdate(ctx context.Context, id string) (*wiki.Article, error) {
	return r.GetByID(ctx, id)
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, spaceID, slug string) (*wiki.Article, error) {
	var found *wiki.Article
	err := r.store.do(ctx, func(d *dataset) error {
		for _, a := range d.articles {
			if a.SpaceID == spaceID && a.Slug == slug {
				found = withSpaceKey(d, a)
				return nil
			}
		}
		return fmt.Errorf("article %s: %w", slug, domain.ErrNotFound)
	})
	return found, err
}

func (r *ArticleRepository) ExistsBySlug(ctx context.Context, spaceID, slug string) (bool, error) {
	exists := false
	err := r.store.do(ctx, func(d *dataset) error {
		for _, a := range d.articles {
			if a.SpaceID == spaceID && a.Slug == slug {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r *ArticleRepository) Update(ctx context.Context, article *wiki.Article) error {
	return r.store.do(ctx, func(d *dataset) error {
		stored, ok := d.articles[article.ID]
		if !ok {
			return fmt.Errorf("article %s: %w", article.ID, domain.ErrNotFound)
		}
		stored.Title = article.Title
		stored.Status = article.Status
		stored.CurrentVersionNo = article.CurrentVersionNo
		stored.UpdatedAt = article.UpdatedAt
		d.articles[article.ID] = stored
		return nil
	})
}

func (r *ArticleRepository) ListBySpace(ctx context.Context, spaceID string, statuses []wiki.ArticleStatus, page models.PageRequest) ([]wiki.Article, int, error) {
	var matched []wiki.Article
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, a := range d.articles {
			if a.SpaceID == spaceID && slices.Contains(statuses, a.Status) {
				matched = append(matched, *withSpaceKey(d, a))
			}
		}
		return nil
	})
	sortRecentFirst(matched)
	return paginate(matched, page), len(matched), nil
}

func (r *ArticleRepository) Search(ctx context.Context, opts *wiki.SearchOptions) ([]wiki.Article, int, error) {
	query := strings.ToLower(opts.Query)

	var matched []wiki.Article
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, a := range d.articles {
			if a.SpaceID != opts.SpaceID || !slices.Contains(opts.Statuses, a.Status) {
				continue
			}
			if strings.Contains(strings.ToLower(a.Title), query) ||
				strings.Contains(strings.ToLower(latestContent(d, a)), query) {
				matched = append(matched, *withSpaceKey(d, a))
			}
		}
		return nil
	})
	sortRecentFirst(matched)

	page := models.PageRequest{Size: opts.Limit}
	if opts.Limit > 0 {
		page.Page = opts.Offset / opts.Limit
	}
	return paginate(matched, page), len(matched), nil
}

func latestContent(d *dataset, a wiki.Article) string {
	for _, v := range d.versions {
		if v.ArticleID == a.ID && v.VersionNo == a.CurrentVersionNo {
			return v.Content
		}
	}
	return ""
}

func sortRecentFirst(articles []wiki.Article) {
	slices.SortFunc(articles, func(a, b wiki.Article) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
