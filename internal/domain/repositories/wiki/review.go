package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// ReviewRepository defines data access operations for review requests
type ReviewRepository interface {
	// Create inserts a request; a second PENDING request for the same
	// article returns *domain.ConflictError
	Create(ctx context.Context, review *wiki.ReviewRequest) error

	GetByID(ctx context.Context, id string) (*wiki.ReviewRequest, error)

	// GetByIDForUpdate locks the request until the surrounding unit of work ends
	GetByIDForUpdate(ctx context.Context, id string) (*wiki.ReviewRequest, error)

	ExistsPending(ctx context.Context, articleID string) (bool, error)

	// Update writes status, reviewer, review time and reason
	Update(ctx context.Context, review *wiki.ReviewRequest) error

	// List returns requests newest first, optionally filtered by status
	List(ctx context.Context, status *wiki.ReviewStatus, page models.PageRequest) ([]wiki.ReviewRequest, int, error)
}
