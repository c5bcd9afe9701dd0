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

// articleService implements the ArticleService interface
type articleService struct {
	articleRepo wikiRepo.ArticleRepository
	versionRepo wikiRepo.VersionRepository
	tagRepo     wikiRepo.TagRepository
	commentRepo wikiRepo.CommentRepository
	txManager   repositories.TransactionManager
	slugs       *SlugAllocator
	validator   *ResourceValidator
	authorizer  services.Authorizer
	recorder    services.AuditRecorder
	logger      *slog.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	articleRepo wikiRepo.ArticleRepository,
	versionRepo wikiRepo.VersionRepository,
	tagRepo wikiRepo.TagRepository,
	commentRepo wikiRepo.CommentRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		tagRepo:     tagRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		slugs:       NewSlugAllocator(articleRepo),
		validator:   validator,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateArticle creates a DRAFT article and its first version in one unit of
// work. A slug taken by a concurrent creator makes the unit fail on the
// unique constraint; it is then rerun with a fresh allocation.
func (s *articleService) CreateArticle(ctx context.Context, caller models.Caller, spaceKey string, req *wikiSvc.CreateArticleRequest) (*wiki.ArticleDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	space, err := s.validator.ValidateSpace(ctx, spaceKey)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	base := Slugify(title)

	var article *wiki.Article
	err = retryOnConflict(ctx, s.logger, "create article", config.MaxSlugAttempts, func() error {
		return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			slug, err := s.slugs.Allocate(txCtx, space.ID, base)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			a := &wiki.Article{
				SpaceID:          space.ID,
				SpaceKey:         space.Key,
				Slug:             slug,
				Title:            title,
				Status:           wiki.StatusDraft,
				CurrentVersionNo: 1,
				CreatedBy:        caller.Actor(),
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.articleRepo.Create(txCtx, a); err != nil {
				return err
			}

			v := &wiki.ArticleVersion{
				ArticleID: a.ID,
				VersionNo: 1,
				Content:   req.Content,
				CreatedBy: caller.Actor(),
				CreatedAt: now,
			}
			if err := s.versionRepo.Create(txCtx, v); err != nil {
				return err
			}

			article = a
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ArticleCreated, caller, article, "", "", false,
		"Created article: "+article.Title,
		map[string]any{"slug": article.Slug, "versionNo": 1},
	))

	s.logger.Info("article created",
		"id", article.ID,
		"space_key", article.SpaceKey,
		"slug", article.Slug,
		"actor", caller.Actor(),
	)

	return s.committedDetail(ctx, article), nil
}

// ListArticles lists the articles of a space visible to the caller
func (s *articleService) ListArticles(ctx context.Context, caller models.Caller, spaceKey string, includeArchived bool, page models.PageRequest) (*models.Page[wiki.Article], error) {
	space, err := s.validator.ValidateSpace(ctx, spaceKey)
	if err != nil {
		return nil, err
	}

	vis := wiki.NewVisibility(caller, includeArchived)
	page.ApplyDefaults(models.DefaultPageSize)

	articles, total, err := s.articleRepo.ListBySpace(ctx, space.ID, vis.Statuses(), page)
	if err != nil {
		return nil, err
	}
	return models.NewPage(articles, total, page), nil
}

// GetArticleBySlug returns a visible article by its slug within a space
func (s *articleService) GetArticleBySlug(ctx context.Context, caller models.Caller, spaceKey, slug string, includeArchived bool) (*wiki.ArticleDetail, error) {
	space, err := s.validator.ValidateSpace(ctx, spaceKey)
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetBySlug(ctx, space.ID, slug)
	if err != nil {
		return nil, err
	}
	if !wiki.NewVisibility(caller, includeArchived).CanSeeArticle(article) {
		return nil, articleNotFound(slug)
	}

	return s.detail(ctx, article)
}

// GetArticle returns a visible article by id
func (s *articleService) GetArticle(ctx context.Context, caller models.Caller, articleID string, includeArchived bool) (*wiki.ArticleDetail, error) {
	article, err := s.validator.VisibleArticle(ctx, wiki.NewVisibility(caller, includeArchived), articleID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, article)
}

// UpdateTitle renames a DRAFT article
func (s *articleService) UpdateTitle(ctx context.Context, caller models.Caller, articleID string, req *wikiSvc.UpdateTitleRequest) (*wiki.ArticleDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, notBlank, validation.RuneLength(1, config.MaxTitleLength)),
	); err != nil {
		return nil, validationError(err)
	}

	newTitle := strings.TrimSpace(req.Title)
	var article *wiki.Article
	var oldTitle string

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.articleRepo.GetByIDForUpdate(txCtx, articleID)
		if err != nil {
			return err
		}
		if a.Status != wiki.StatusDraft {
			return domain.NewInvalidState("Only draft articles can be updated.")
		}

		oldTitle = a.Title
		a.Title = newTitle
		a.UpdatedAt = time.Now().UTC()
		if err := s.articleRepo.Update(txCtx, a); err != nil {
			return err
		}
		article = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ArticleTitleUpdated, caller, article, "", "", false,
		"Updated article title",
		map[string]any{"slug": article.Slug, "oldTitle": oldTitle, "newTitle": newTitle},
	))

	s.logger.Info("article title updated",
		"id", article.ID,
		"actor", caller.Actor(),
	)

	return s.committedDetail(ctx, article), nil
}

// Archive moves an article to ARCHIVED. Archiving an archived article
// changes nothing and records no event.
func (s *articleService) Archive(ctx context.Context, caller models.Caller, articleID string) (*wiki.ArticleDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	var article *wiki.Article
	var fromStatus wiki.ArticleStatus
	changed := false

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.articleRepo.GetByIDForUpdate(txCtx, articleID)
		if err != nil {
			return err
		}
		article = a

		switch a.Status {
		case wiki.StatusArchived:
			return nil
		case wiki.StatusInReview:
			return domain.NewInvalidState("Cannot archive an article while it is in review")
		}

		fromStatus = a.Status
		a.Status = wiki.StatusArchived
		a.UpdatedAt = time.Now().UTC()
		if err := s.articleRepo.Update(txCtx, a); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			s.logger.Info("archive blocked", "id", articleID, "actor", caller.Actor(), "reason", err)
		}
		return nil, err
	}

	if changed {
		s.recorder.Record(articleEvent(audit.ArticleArchived, caller, article, "", "", false,
			"Archived article",
			map[string]any{"slug": article.Slug, "fromStatus": string(fromStatus)},
		))
		s.logger.Info("article archived",
			"id", article.ID,
			"from_status", fromStatus,
			"actor", caller.Actor(),
		)
	}

	return s.committedDetail(ctx, article), nil
}

// Unarchive restores an ARCHIVED article to DRAFT
func (s *articleService) Unarchive(ctx context.Context, caller models.Caller, articleID string) (*wiki.ArticleDetail, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	var article *wiki.Article
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.articleRepo.GetByIDForUpdate(txCtx, articleID)
		if err != nil {
			return err
		}
		if a.Status != wiki.StatusArchived {
			return domain.NewInvalidState("Only archived articles can be restored")
		}

		a.Status = wiki.StatusDraft
		a.UpdatedAt = time.Now().UTC()
		if err := s.articleRepo.Update(txCtx, a); err != nil {
			return err
		}
		article = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.ArticleUnarchived, caller, article, "", "", false,
		"Restored article from archive",
		map[string]any{"slug": article.Slug},
	))

	s.logger.Info("article unarchived",
		"id", article.ID,
		"actor", caller.Actor(),
	)

	return s.committedDetail(ctx, article), nil
}

// detail adds latest content, tags and the current version's comment count.
// Tag and comment lookups degrade the response instead of failing it.
func (s *articleService) detail(ctx context.Context, article *wiki.Article) (*wiki.ArticleDetail, error) {
	d := &wiki.ArticleDetail{Article: *article, Tags: []wiki.TagSummary{}}

	if article.CurrentVersionNo > 0 {
		v, err := s.versionRepo.GetByNumber(ctx, article.ID, article.CurrentVersionNo)
		switch {
		case err == nil:
			d.Content = &v.Content
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, fmt.Errorf("load latest version: %w", err)
		}

		count, err := s.commentRepo.CountByVersion(ctx, article.ID, article.CurrentVersionNo)
		if err != nil {
			s.logger.Warn("failed to count comments", "article_id", article.ID, "error", err)
		} else {
			d.CommentCount = count
		}
	}

	tags, err := s.tagRepo.ListByArticle(ctx, article.ID)
	if err != nil {
		s.logger.Warn("failed to load tags", "article_id", article.ID, "error", err)
	} else if tags != nil {
		d.Tags = tags
	}

	return d, nil
}

// committedDetail is detail for a mutation that has already committed. A
// failed read must not report the write as failed, so the article is
// returned without its content instead.
func (s *articleService) committedDetail(ctx context.Context, article *wiki.Article) *wiki.ArticleDetail {
	d, err := s.detail(ctx, article)
	if err != nil {
		s.logger.Warn("failed to load article detail after commit", "id", article.ID, "error", err)
		return &wiki.ArticleDetail{Article: *article, Tags: []wiki.TagSummary{}}
	}
	return d
}

// validateCreateRequest validates an article creation request
func (s *articleService) validateCreateRequest(req *wikiSvc.CreateArticleRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			notBlank,
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&req.Content,
			validation.Required,
			notBlank,
			validation.RuneLength(1, config.MaxContentLength),
		),
	)
}
