package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// ReviewRepository implements wikiRepo.ReviewRepository in memory
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(store *Store) wikiRepo.ReviewRepository {
	return &ReviewRepository{store: store}
}

func pendingFor(d *dataset, articleID string) (wiki.ReviewRequest, bool) {
	for _, rr := range d.reviews {
		if rr.ArticleID == articleID && rr.Status == wiki.ReviewPending {
			return rr, true
		}
	}
	return wiki.ReviewRequest{}, false
}

func (r *ReviewRepository) Create(ctx context.Context, review *wiki.ReviewRequest) error {
	return r.store.do(ctx, func(d *dataset) error {
		if _, ok := d.articles[review.ArticleID]; !ok {
			return fmt.Errorf("article %s: %w", review.ArticleID, domain.ErrNotFound)
		}
		if review.Status == wiki.ReviewPending {
			if existing, ok := pendingFor(d, review.ArticleID); ok {
				return &domain.ConflictError{
					Message:      "pending review request already exists",
					ResourceType: "review_request",
					ResourceID:   existing.ID,
				}
			}
		}
		review.ID = uuid.NewString()
		d.reviews[review.ID] = *review
		return nil
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*wiki.ReviewRequest, error) {
	var found *wiki.ReviewRequest
	err := r.store.do(ctx, func(d *dataset) error {
		rr, ok := d.reviews[id]
		if !ok {
			return fmt.Errorf("review request %s: %w", id, domain.ErrNotFound)
		}
		found = &rr
		return nil
	})
	return found, err
}

// GetByIDForUpdate is GetByID: the unit of work already holds the store lock
func (r *ReviewRepository) GetByIDForUpdate(ctx context.Context, id string) (*wiki.ReviewRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) ExistsPending(ctx context.Context, articleID string) (bool, error) {
	exists := false
	err := r.store.do(ctx, func(d *dataset) error {
		_, exists = pendingFor(d, articleID)
		return nil
	})
	return exists, err
}

func (r *ReviewRepository) Update(ctx context.Context, review *wiki.ReviewRequest) error {
	return r.store.do(ctx, func(d *dataset) error {
		stored, ok := d.reviews[review.ID]
		if !ok {
			return fmt.Errorf("review request %s: %w", review.ID, domain.ErrNotFound)
		}
		stored.Status = review.Status
		stored.ReviewedBy = review.ReviewedBy
		stored.ReviewedAt = review.ReviewedAt
		stored.Reason = review.Reason
		d.reviews[review.ID] = stored
		return nil
	})
}

func (r *ReviewRepository) List(ctx context.Context, status *wiki.ReviewStatus, page models.PageRequest) ([]wiki.ReviewRequest, int, error) {
	var matched []wiki.ReviewRequest
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, rr := range d.reviews {
			if status == nil || rr.Status == *status {
				matched = append(matched, rr)
			}
		}
		return nil
	})
	slices.SortFunc(matched, func(a, b wiki.ReviewRequest) int {
		if c := b.RequestedAt.Compare(a.RequestedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(matched, page), len(matched), nil
}
