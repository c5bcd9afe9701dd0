package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// CommentService handles comments on article versions
type CommentService interface {
	AddComment(ctx context.Context, caller models.Caller, articleID string, versionNo int, req *AddCommentRequest) (*wiki.Comment, error)
	ListComments(ctx context.Context, caller models.Caller, articleID string, versionNo int, includeArchived bool, page models.PageRequest) (*models.Page[wiki.Comment], error)
}

// AddCommentRequest represents a new comment
type AddCommentRequest struct {
	Body string `json:"body"`
}
