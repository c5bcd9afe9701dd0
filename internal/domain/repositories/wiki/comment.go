package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// CommentRepository defines data access operations for version comments
type CommentRepository interface {
	Create(ctx context.Context, comment *wiki.Comment) error

	// ListByVersion returns comments oldest first
	ListByVersion(ctx context.Context, articleID string, versionNo int, page models.PageRequest) ([]wiki.Comment, int, error)

	CountByVersion(ctx context.Context, articleID string, versionNo int) (int, error)
}
