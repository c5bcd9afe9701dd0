package wiki

import (
	"context"
	"errors"
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

// tagService implements the TagService interface
type tagService struct {
	articleRepo wikiRepo.ArticleRepository
	tagRepo     wikiRepo.TagRepository
	txManager   repositories.TransactionManager
	authorizer  services.Authorizer
	recorder    services.AuditRecorder
	logger      *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	articleRepo wikiRepo.ArticleRepository,
	tagRepo wikiRepo.TagRepository,
	txManager repositories.TransactionManager,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.TagService {
	return &tagService{
		articleRepo: articleRepo,
		tagRepo:     tagRepo,
		txManager:   txManager,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateTag creates a tag. Names differing only in case collide.
func (s *tagService) CreateTag(ctx context.Context, caller models.Caller, req *wikiSvc.CreateTagRequest) (*wiki.Tag, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxTagNameLength)),
	); err != nil {
		return nil, validationError(err)
	}

	tag := &wiki.Tag{Name: req.Name, CreatedAt: time.Now().UTC()}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			conflictErr.Message = "Tag already exists"
		}
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name, "actor", caller.Actor())
	return tag, nil
}

// ListTags lists tags ordered by name
func (s *tagService) ListTags(ctx context.Context, page models.PageRequest) (*models.Page[wiki.Tag], error) {
	page.ApplyDefaults(models.DefaultPageSize)
	tags, total, err := s.tagRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return models.NewPage(tags, total, page), nil
}

// AttachTag links a tag to an article. Attaching twice is a no-op.
func (s *tagService) AttachTag(ctx context.Context, caller models.Caller, articleID, tagID string) ([]wiki.TagSummary, error) {
	return s.changeTag(ctx, caller, articleID, tagID, true)
}

// DetachTag unlinks a tag from an article. Detaching a missing link is a no-op.
func (s *tagService) DetachTag(ctx context.Context, caller models.Caller, articleID, tagID string) ([]wiki.TagSummary, error) {
	return s.changeTag(ctx, caller, articleID, tagID, false)
}

func (s *tagService) changeTag(ctx context.Context, caller models.Caller, articleID, tagID string, attach bool) ([]wiki.TagSummary, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}

	var article *wiki.Article
	var tag *wiki.Tag
	changed := false

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		a, err := s.articleRepo.GetByID(txCtx, articleID)
		if err != nil {
			return err
		}
		t, err := s.tagRepo.GetByID(txCtx, tagID)
		if err != nil {
			return err
		}

		if attach {
			changed, err = s.tagRepo.Attach(txCtx, a.ID, t.ID)
		} else {
			changed, err = s.tagRepo.Detach(txCtx, a.ID, t.ID)
		}
		if err != nil {
			return err
		}

		article, tag = a, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		eventType, message := audit.TagAddedToArticle, "Added tag to article: "+tag.Name
		if !attach {
			eventType, message = audit.TagRemovedFromArticle, "Removed tag from article: "+tag.Name
		}
		s.recorder.Record(articleEvent(eventType, caller, article, audit.EntityTag, tag.ID,
			article.Status == wiki.StatusPublished,
			message,
			map[string]any{"tagId": tag.ID, "tagName": tag.Name},
		))
		s.logger.Info("article tags changed",
			"article_id", article.ID,
			"tag_id", tag.ID,
			"attached", attach,
			"actor", caller.Actor(),
		)
	}

	return s.tagRepo.ListByArticle(ctx, article.ID)
}
