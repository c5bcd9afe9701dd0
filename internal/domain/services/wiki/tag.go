package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// TagService manages tags and their attachment to articles
type TagService interface {
	CreateTag(ctx context.Context, caller models.Caller, req *CreateTagRequest) (*wiki.Tag, error)
	ListTags(ctx context.Context, page models.PageRequest) (*models.Page[wiki.Tag], error)

	// AttachTag is idempotent and returns the article's tags afterwards
	AttachTag(ctx context.Context, caller models.Caller, articleID, tagID string) ([]wiki.TagSummary, error)
	DetachTag(ctx context.Context, caller models.Caller, articleID, tagID string) ([]wiki.TagSummary, error)
}

// CreateTagRequest represents a tag creation request
type CreateTagRequest struct {
	Name string `json:"name"`
}
