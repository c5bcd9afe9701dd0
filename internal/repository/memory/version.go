package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// VersionRepository implements wikiRepo.VersionRepository in memory
type VersionRepository struct {
	store *Store
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(store *Store) wikiRepo.VersionRepository {
	return &VersionRepository{store: store}
}

func (r *VersionRepository) Create(ctx context.Context, version *wiki.ArticleVersion) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.articles[version.ArticleID]; !ok {
			return fmt.Errorf("article %s: %w", version.ArticleID, domain.ErrNotFound)
		}
		for _, v := range d.versions {
			if v.ArticleID == version.ArticleID && v.VersionNo == version.VersionNo {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("version %d already exists", version.VersionNo),
					ResourceType: "version",
					ResourceID:   v.ID,
				}
			}
		}
		version.ID = uuid.NewString()
		d.versions[version.ID] = *version
		return nil
	})
}

func (r *VersionRepository) MaxVersionNo(ctx context.Context, articleID string) (int, error) {
	maxNo := 0
	err := r.store.do(ctx, func(d *dataset) error {
		for _, v := range d.versions {
			if v.ArticleID == articleID && v.VersionNo > maxNo {
				maxNo = v.VersionNo
			}
		}
		return nil
	})
	return maxNo, err
}

func (r *VersionRepository) GetByNumber(ctx context.Context, articleID string, versionNo int) (*wiki.ArticleVersion, error) {
	var found *wiki.ArticleVersion
	err := r.store.do(ctx, func(d *dataset) error {
		for _, v := range d.versions {
			if v.ArticleID == articleID && v.VersionNo == versionNo {
				found = &v
				return nil
			}
		}
		return fmt.Errorf("version %d of article %s: %w", versionNo, articleID, domain.ErrNotFound)
	})
	return found, err
}

func (r *VersionRepository) ListByArticle(ctx context.Context, articleID string, maxVersionNo int, page models.PageRequest) ([]wiki.ArticleVersion, int, error) {
	var matched []wiki.ArticleVersion
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, v := range d.versions {
			if v.ArticleID == articleID && (maxVersionNo <= 0 || v.VersionNo <= maxVersionNo) {
				matched = append(matched, v)
			}
		}
		return nil
	})
	slices.SortFunc(matched, func(a, b wiki.ArticleVersion) int { return cmp.Compare(a.VersionNo, b.VersionNo) })
	return paginate(matched, page), len(matched), nil
}
