package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// VersionService appends and reads article versions
type VersionService interface {
	// AddVersion appends the next version to a DRAFT article
	AddVersion(ctx context.Context, caller models.Caller, articleID string, req *AddVersionRequest) (*wiki.ArticleVersion, error)

	ListVersions(ctx context.Context, caller models.Caller, articleID string, includeArchived bool, page models.PageRequest) (*models.Page[wiki.ArticleVersion], error)

	GetVersion(ctx context.Context, caller models.Caller, articleID string, versionNo int, includeArchived bool) (*wiki.ArticleVersion, error)
}

// AddVersionRequest represents new version content
type AddVersionRequest struct {
	Content string `json:"content"`
}
