package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// TagRepository defines data access operations for tags and article tagging
type TagRepository interface {
	// Create inserts a tag; a name equal ignoring case returns *domain.ConflictError
	Create(ctx context.Context, tag *wiki.Tag) error

	GetByID(ctx context.Context, id string) (*wiki.Tag, error)

	// List returns tags ordered by name
	List(ctx context.Context, page models.PageRequest) ([]wiki.Tag, int, error)

	// Attach links a tag to an article. added is false when the link already existed.
	Attach(ctx context.Context, articleID, tagID string) (added bool, err error)

	// Detach removes the link. removed is false when there was none.
	Detach(ctx context.Context, articleID, tagID string) (removed bool, err error)

	ListByArticle(ctx context.Context, articleID string) ([]wiki.TagSummary, error)
}
