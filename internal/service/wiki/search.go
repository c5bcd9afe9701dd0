package wiki

import (
	"context"
	"fmt"
	"log/slog"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	wikiSvc "wikiflow/internal/domain/services/wiki"
)

// searchService implements the SearchService interface
type searchService struct {
	articleRepo wikiRepo.ArticleRepository
	validator   *ResourceValidator
	logger      *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(articleRepo wikiRepo.ArticleRepository, validator *ResourceValidator, logger *slog.Logger) wikiSvc.SearchService {
	return &searchService{
		articleRepo: articleRepo,
		validator:   validator,
		logger:      logger,
	}
}

// Search matches titles and latest content within one space, filtered by visibility
func (s *searchService) Search(ctx context.Context, caller models.Caller, req *wikiSvc.SearchRequest) (*models.Page[wiki.Article], error) {
	space, err := s.validator.ValidateSpace(ctx, req.SpaceKey)
	if err != nil {
		return nil, err
	}

	page := req.Page
	page.ApplyDefaults(wiki.DefaultSearchLimit)

	opts := &wiki.SearchOptions{
		Query:    req.Query,
		SpaceID:  space.ID,
		Statuses: wiki.NewVisibility(caller, req.IncludeArchived).Statuses(),
		Limit:    page.Size,
		Offset:   page.Offset(),
	}
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	articles, total, err := s.articleRepo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search executed",
		"space_key", space.Key,
		"query", opts.Query,
		"total", total,
	)

	return models.NewPage(articles, total, page), nil
}
