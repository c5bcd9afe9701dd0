package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// VersionRepository defines data access operations for article versions.
// Versions are append-only: there is no update or delete.
type VersionRepository interface {
	// Create inserts a version; a duplicate (article, version_no) returns *domain.ConflictError
	Create(ctx context.Context, version *wiki.ArticleVersion) error

	// MaxVersionNo returns the highest version number, or 0 when there are none
	MaxVersionNo(ctx context.Context, articleID string) (int, error)

	GetByNumber(ctx context.Context, articleID string, versionNo int) (*wiki.ArticleVersion, error)

	// ListByArticle returns versions in ascending order. maxVersionNo > 0 caps
	// the range; 0 returns all of them.
	ListByArticle(ctx context.Context, articleID string, maxVersionNo int, page models.PageRequest) ([]wiki.ArticleVersion, int, error)
}
