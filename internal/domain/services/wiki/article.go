package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// ArticleService drives the article lifecycle. Reads apply wiki.Visibility;
// an article the caller may not see is reported as domain.ErrNotFound.
type ArticleService interface {
	// CreateArticle creates a DRAFT article with version 1 and a unique slug
	CreateArticle(ctx context.Context, caller models.Caller, spaceKey string, req *CreateArticleRequest) (*wiki.ArticleDetail, error)

	ListArticles(ctx context.Context, caller models.Caller, spaceKey string, includeArchived bool, page models.PageRequest) (*models.Page[wiki.Article], error)

	GetArticleBySlug(ctx context.Context, caller models.Caller, spaceKey, slug string, includeArchived bool) (*wiki.ArticleDetail, error)

	GetArticle(ctx context.Context, caller models.Caller, articleID string, includeArchived bool) (*wiki.ArticleDetail, error)

	// UpdateTitle renames a DRAFT article. The slug is unchanged.
	UpdateTitle(ctx context.Context, caller models.Caller, articleID string, req *UpdateTitleRequest) (*wiki.ArticleDetail, error)

	// Archive is idempotent; archiving an IN_REVIEW article fails with InvalidState
	Archive(ctx context.Context, caller models.Caller, articleID string) (*wiki.ArticleDetail, error)

	// Unarchive restores an ARCHIVED article to DRAFT
	Unarchive(ctx context.Context, caller models.Caller, articleID string) (*wiki.ArticleDetail, error)
}

// CreateArticleRequest represents an article creation request
type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateTitleRequest represents a title change
type UpdateTitleRequest struct {
	Title string `json:"title"`
}
