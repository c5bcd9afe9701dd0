package wiki

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResourceValidator resolves parent resources and applies the visibility
// filter so hidden records are indistinguishable from missing ones.
type ResourceValidator struct {
	spaceRepo   wikiRepo.SpaceRepository
	articleRepo wikiRepo.ArticleRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(
	spaceRepo wikiRepo.SpaceRepository,
	articleRepo wikiRepo.ArticleRepository,
) *ResourceValidator {
	return &ResourceValidator{
		spaceRepo:   spaceRepo,
		articleRepo: articleRepo,
	}
}

// ValidateSpace returns the space with the given key or domain.ErrNotFound
func (v *ResourceValidator) ValidateSpace(ctx context.Context, key string) (*wiki.Space, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("space: %w", domain.ErrNotFound)
	}
	space, err := v.spaceRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("invalid space: %w", err)
	}
	return space, nil
}

// VisibleArticle loads an article and hides it unless vis allows its status
func (v *ResourceValidator) VisibleArticle(ctx context.Context, vis wiki.Visibility, articleID string) (*wiki.Article, error) {
	article, err := v.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !vis.CanSeeArticle(article) {
		return nil, articleNotFound(articleID)
	}
	return article, nil
}

func articleNotFound(ref string) error {
	return fmt.Errorf("article %s: %w", ref, domain.ErrNotFound)
}

// notBlank rejects values that are empty after trimming
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// validationError wraps an ozzo error as domain.ErrValidation
func validationError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
