package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// SpaceService manages the space catalog
type SpaceService interface {
	CreateSpace(ctx context.Context, caller models.Caller, req *CreateSpaceRequest) (*wiki.Space, error)
	GetSpace(ctx context.Context, key string) (*wiki.Space, error)
	ListSpaces(ctx context.Context, page models.PageRequest) (*models.Page[wiki.Space], error)
}

// CreateSpaceRequest represents a space creation request
type CreateSpaceRequest struct {
	Key  string `json:"space_key"`
	Name string `json:"name"`
}
