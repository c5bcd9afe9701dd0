package wiki

import (
	"context"
	"fmt"
	"log/slog"
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

// versionService implements the VersionService interface
type versionService struct {
	articleRepo wikiRepo.ArticleRepository
	versionRepo wikiRepo.VersionRepository
	txManager   repositories.TransactionManager
	validator   *ResourceValidator
	authorizer  services.Authorizer
	recorder    services.AuditRecorder
	logger      *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	articleRepo wikiRepo.ArticleRepository,
	versionRepo wikiRepo.VersionRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.VersionService {
	return &versionService{
		articleRepo: articleRepo,
		versionRepo: versionRepo,
		txManager:   txManager,
		validator:   validator,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// AddVersion appends max+1 to a DRAFT article. The article row is locked for
// the unit of work, so concurrent adds on one article run one after another
// and numbers stay gapless. The (article, version_no) constraint backs this
// up; a violation reruns the unit.
func (s *versionService) AddVersion(ctx context.Context, caller models.Caller, articleID string, req *wikiSvc.AddVersionRequest) (*wiki.ArticleVersion, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, notBlank, validation.RuneLength(1, config.MaxContentLength)),
	); err != nil {
		return nil, validationError(err)
	}

	var article *wiki.Article
	var version *wiki.ArticleVersion

	err := retryOnConflict(ctx, s.logger, "add version", config.MaxVersionAttempts, func() error {
		return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			a, err := s.articleRepo.GetByIDForUpdate(txCtx, articleID)
			if err != nil {
				return err
			}
			if a.Status != wiki.StatusDraft {
				return domain.NewInvalidState("Versions can only be added while article is in DRAFT")
			}

			maxNo, err := s.versionRepo.MaxVersionNo(txCtx, a.ID)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			v := &wiki.ArticleVersion{
				ArticleID: a.ID,
				VersionNo: maxNo + 1,
				Content:   req.Content,
				CreatedBy: caller.Actor(),
				CreatedAt: now,
			}
			if err := s.versionRepo.Create(txCtx, v); err != nil {
				return err
			}

			a.CurrentVersionNo = v.VersionNo
			a.UpdatedAt = now
			if err := s.articleRepo.Update(txCtx, a); err != nil {
				return err
			}

			article, version = a, v
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.VersionAdded, caller, article, audit.EntityVersion, version.ID, false,
		fmt.Sprintf("Added version %d to article", version.VersionNo),
		map[string]any{"versionNo": version.VersionNo},
	))

	s.logger.Info("version added",
		"article_id", article.ID,
		"version_no", version.VersionNo,
		"actor", caller.Actor(),
	)

	return version, nil
}

// ListVersions returns the visible versions of an article, oldest first
func (s *versionService) ListVersions(ctx context.Context, caller models.Caller, articleID string, includeArchived bool, page models.PageRequest) (*models.Page[wiki.ArticleVersion], error) {
	vis := wiki.NewVisibility(caller, includeArchived)
	article, err := s.validator.VisibleArticle(ctx, vis, articleID)
	if err != nil {
		return nil, err
	}

	// Unrestricted callers see every stored version
	maxNo := 0
	if vis.Restricted() {
		maxNo = article.CurrentVersionNo
	}

	page.ApplyDefaults(models.DefaultPageSize)
	versions, total, err := s.versionRepo.ListByArticle(ctx, article.ID, maxNo, page)
	if err != nil {
		return nil, err
	}
	return models.NewPage(versions, total, page), nil
}

// GetVersion returns one visible version
func (s *versionService) GetVersion(ctx context.Context, caller models.Caller, articleID string, versionNo int, includeArchived bool) (*wiki.ArticleVersion, error) {
	vis := wiki.NewVisibility(caller, includeArchived)
	article, err := s.validator.VisibleArticle(ctx, vis, articleID)
	if err != nil {
		return nil, err
	}
	if !vis.CanSeeVersion(article, versionNo) {
		return nil, versionNotFound(articleID, versionNo)
	}

	return s.versionRepo.GetByNumber(ctx, article.ID, versionNo)
}

func versionNotFound(articleID string, versionNo int) error {
	return fmt.Errorf("version %d of article %s: %w", versionNo, articleID, domain.ErrNotFound)
}
