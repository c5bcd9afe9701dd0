package wiki

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
)

// SearchService finds articles within a space
type SearchService interface {
	Search(ctx context.Context, caller models.Caller, req *SearchRequest) (*models.Page[wiki.Article], error)
}

// SearchRequest represents an article search request
type SearchRequest struct {
	SpaceKey        string `json:"space_key"`
	Query           string `json:"q"`
	IncludeArchived bool   `json:"include_archived"`
	Page            models.PageRequest
}
