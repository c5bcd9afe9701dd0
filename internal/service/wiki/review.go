package wiki

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wikiflow/internal/config"
	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	"wikiflow/internal/domain/repositories"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const duplicatePendingReview = "A pending review request already exists for this article"

// reviewService implements the ReviewService interface.
//
// Every transition locks the article before the review request so concurrent
// submit, approve and reject calls on one article acquire locks in the same order.
type reviewService struct {
	articleRepo wikiRepo.ArticleRepository
	reviewRepo  wikiRepo.ReviewRepository
	txManager   repositories.TransactionManager
	authorizer  services.Authorizer
	recorder    services.AuditRecorder
	logger      *slog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	articleRepo wikiRepo.ArticleRepository,
	reviewRepo wikiRepo.ReviewRepository,
	txManager repositories.TransactionManager,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.ReviewService {
	return &reviewService{
		articleRepo: articleRepo,
		reviewRepo:  reviewRepo,
		txManager:   txManager,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// Submit opens a PENDING review for a DRAFT article and moves it to IN_REVIEW
func (s *reviewService) Submit(ctx context.Context, caller models.Caller, articleID string) (*wiki.ReviewDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	var article *wiki.Article
	var review *wiki.ReviewRequest

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.articleRepo.GetByIDForUpdate(txCtx, articleID)
		if err != nil {
			return err
		}
		if a.Status != wiki.StatusDraft {
			return domain.NewInvalidState("Only DRAFT articles can be submitted for review")
		}

		pending, err := s.reviewRepo.ExistsPending(txCtx, a.ID)
		if err != nil {
			return err
		}
		if pending {
			return domain.NewInvalidState(duplicatePendingReview)
		}

		now := time.Now().UTC()
		rr := &wiki.ReviewRequest{
			ArticleID:   a.ID,
			Status:      wiki.ReviewPending,
			RequestedBy: caller.Actor(),
			RequestedAt: now,
		}
		if err := s.reviewRepo.Create(txCtx, rr); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.NewInvalidState(duplicatePendingReview)
			}
			return err
		}

		a.Status = wiki.StatusInReview
		a.UpdatedAt = now
		if err := s.articleRepo.Update(txCtx, a); err != nil {
			return err
		}

		article, review = a, rr
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ReviewSubmitted, caller, article, audit.EntityReviewRequest, review.ID, false,
		"Submitted article for review",
		map[string]any{"reviewRequestId": review.ID},
	))

	s.logger.Info("review submitted",
		"review_id", review.ID,
		"article_id", article.ID,
		"actor", caller.Actor(),
	)

	return toReviewDetail(review, article), nil
}

// Approve publishes the article of a PENDING review
func (s *reviewService) Approve(ctx context.Context, caller models.Caller, reviewID string) (*wiki.ReviewDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	article, review, err := s.decide(ctx, caller, reviewID,
		"Only PENDING review requests can be approved",
		func(rr *wiki.ReviewRequest, a *wiki.Article) {
			rr.Status = wiki.ReviewApproved
			a.Status = wiki.StatusPublished
		},
	)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ReviewApproved, caller, article, audit.EntityReviewRequest, review.ID, true,
		"Approved review request (article published)",
		map[string]any{"reviewRequestId": review.ID},
	))

	s.logger.Info("review approved",
		"review_id", review.ID,
		"article_id", article.ID,
		"actor", caller.Actor(),
	)

	return toReviewDetail(review, article), nil
}

// Reject returns the article of a PENDING review to DRAFT
func (s *reviewService) Reject(ctx context.Context, caller models.Caller, reviewID string, req *wikiSvc.RejectReviewRequest) (*wiki.ReviewDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Reason, validation.Required, notBlank, validation.RuneLength(1, config.MaxReasonLength)),
	); err != nil {
		return nil, validationError(err)
	}
	reason := strings.TrimSpace(req.Reason)

	article, review, err := s.decide(ctx, caller, reviewID,
		"Only PENDING review requests can be rejected",
		func(rr *wiki.ReviewRequest, a *wiki.Article) {
			rr.Status = wiki.ReviewRejected
			rr.Reason = &reason
			a.Status = wiki.StatusDraft
		},
	)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ReviewRejected, caller, article, audit.EntityReviewRequest, review.ID, false,
		"Rejected review request (article back to draft)",
		map[string]any{"reviewRequestId": review.ID, "reason": reason},
	))

	s.logger.Info("review rejected",
		"review_id", review.ID,
		"article_id", article.ID,
		"actor", caller.Actor(),
	)

	return toReviewDetail(review, article), nil
}

// decide closes a PENDING review and moves its article in one unit of work.
// apply sets the new statuses; reviewer and review time are stamped here.
func (s *reviewService) decide(
	ctx context.Context,
	caller models.Caller,
	reviewID string,
	notPendingMessage string,
	apply func(rr *wiki.ReviewRequest, a *wiki.Article),
) (*wiki.Article, *wiki.ReviewRequest, error) {
	var article *wiki.Article
	var review *wiki.ReviewRequest

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		unlocked, err := s.reviewRepo.GetByID(txCtx, reviewID)
		if err != nil {
			return err
		}

		a, err := s.articleRepo.GetByIDForUpdate(txCtx, unlocked.ArticleID)
		if err != nil {
			return err
		}
		rr, err := s.reviewRepo.GetByIDForUpdate(txCtx, reviewID)
		if err != nil {
			return err
		}
		if rr.Status != wiki.ReviewPending {
			return domain.NewInvalidState(notPendingMessage)
		}

		now := time.Now().UTC()
		actor := caller.Actor()
		apply(rr, a)
		rr.ReviewedBy = &actor
		rr.ReviewedAt = &now
		a.UpdatedAt = now

		if err := s.reviewRepo.Update(txCtx, rr); err != nil {
			return err
		}
		if err := s.articleRepo.Update(txCtx, a); err != nil {
			return err
		}

		article, review = a, rr
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return article, review, nil
}

// ListReviews returns review requests newest first
func (s *reviewService) ListReviews(ctx context.Context, caller models.Caller, status string, page models.PageRequest) (*models.Page[wiki.ReviewDetail], error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	var filter *wiki.ReviewStatus
	if strings.TrimSpace(status) != "" {
		parsed, ok := wiki.ParseReviewStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown review status %q", domain.ErrValidation, status)
		}
		filter = &parsed
	}

	page.ApplyDefaults(config.DefaultReviewPageSize)
	reviews, total, err := s.reviewRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	details := make([]wiki.ReviewDetail, 0, len(reviews))
	for i := range reviews {
		article, err := s.articleRepo.GetByID(ctx, reviews[i].ArticleID)
		if err != nil {
			return nil, fmt.Errorf("load article of review %s: %w", reviews[i].ID, err)
		}
		details = append(details, *toReviewDetail(&reviews[i], article))
	}

	return models.NewPage(details, total, page), nil
}

func toReviewDetail(rr *wiki.ReviewRequest, a *wiki.Article) *wiki.ReviewDetail {
	return &wiki.ReviewDetail{
		ReviewRequest: *rr,
		SpaceKey:      a.SpaceKey,
		ArticleSlug:   a.Slug,
		ArticleStatus: a.Status,
	}
}
