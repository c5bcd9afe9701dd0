package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// ArticleRepository defines data access operations for articles.
// Reads fill Article.SpaceKey from the owning space.
type ArticleRepository interface {
	// Create inserts an article; a (space, slug) collision returns *domain.ConflictError
	Create(ctx context.Context, article *wiki.Article) error

	GetByID(ctx context.Context, id string) (*wiki.Article, error)

	// GetByIDForUpdate reads the article and locks it until the surrounding
	// unit of work ends. Only meaningful inside TransactionManager.ExecTx.
	GetByIDForUpdate(ctx context.Context, id string) (*wiki.Article, error)

	GetBySlug(ctx context.Context, spaceID, slug string) (*wiki.Article, error)

	ExistsBySlug(ctx context.Context, spaceID, slug string) (bool, error)

	// Update writes title, status, current version and updated_at
	Update(ctx context.Context, article *wiki.Article) error

	// ListBySpace returns articles in any of statuses, most recently updated first
	ListBySpace(ctx context.Context, spaceID string, statuses []wiki.ArticleStatus, page models.PageRequest) ([]wiki.Article, int, error)

	// Search matches the query against titles and latest content
	Search(ctx context.Context, opts *wiki.SearchOptions) ([]wiki.Article, int, error)
}
