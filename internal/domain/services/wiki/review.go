package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// ReviewService runs the publish workflow
type ReviewService interface {
	// Submit opens a PENDING review and moves the article to IN_REVIEW
	Submit(ctx context.Context, caller models.Caller, articleID string) (*wiki.ReviewDetail, error)

	// Approve publishes the article
	Approve(ctx context.Context, caller models.Caller, reviewID string) (*wiki.ReviewDetail, error)

	// Reject sends the article back to DRAFT with a reason
	Reject(ctx context.Context, caller models.Caller, reviewID string, req *RejectReviewRequest) (*wiki.ReviewDetail, error)

	// ListReviews returns requests newest first; status is optional
	ListReviews(ctx context.Context, caller models.Caller, status string, page models.PageRequest) (*models.Page[wiki.ReviewDetail], error)
}

// RejectReviewRequest carries the mandatory rejection reason
type RejectReviewRequest struct {
	Reason string `json:"reason"`
}
