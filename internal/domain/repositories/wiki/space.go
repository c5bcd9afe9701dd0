package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// SpaceRepository defines data access operations for spaces
type SpaceRepository interface {
	// Create inserts a space; a duplicate key returns *domain.ConflictError
	Create(ctx context.Context, space *wiki.Space) error

	GetByKey(ctx context.Context, key string) (*wiki.Space, error)

	// List returns spaces ordered by key
	List(ctx context.Context, page models.PageRequest) ([]wiki.Space, int, error)
}
