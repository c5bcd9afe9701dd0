package wiki

import (
	"context"
	"log/slog"
	"time"

	"wikiflow/internal/config"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// commentService implements the CommentService interface
type commentService struct {
	versionRepo wikiRepo.VersionRepository
	commentRepo wikiRepo.CommentRepository
	validator   *ResourceValidator
	authorizer  services.Authorizer
	recorder    services.AuditRecorder
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	versionRepo wikiRepo.VersionRepository,
	commentRepo wikiRepo.CommentRepository,
	validator *ResourceValidator,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.CommentService {
	return &commentService{
		versionRepo: versionRepo,
		commentRepo: commentRepo,
		validator:   validator,
		authorizer:  authorizer,
		recorder:    recorder,
		logger:      logger,
	}
}

// AddComment comments on a version the caller can see. The event is public
// only while the article is published.
func (s *commentService) AddComment(ctx context.Context, caller models.Caller, articleID string, versionNo int, req *wikiSvc.AddCommentRequest) (*wiki.Comment, error) {
	if err := s.authorizer.CanEdit(caller); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Body, validation.Required, notBlank, validation.RuneLength(1, config.MaxCommentLength)),
	); err != nil {
		return nil, validationError(err)
	}

	article, err := s.visibleVersion(ctx, caller, articleID, versionNo, false)
	if err != nil {
		return nil, err
	}

	comment := &wiki.Comment{
		ArticleID: article.ID,
		VersionNo: versionNo,
		Body:      req.Body,
		CreatedBy: caller.Actor(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.recorder.Record(articleEvent(audit.CommentAdded, caller, article, audit.EntityComment, comment.ID,
		article.Status == wiki.StatusPublished,
		"Added comment to article",
		map[string]any{"commentId": comment.ID, "versionNo": versionNo},
	))

	s.logger.Info("comment added",
		"id", comment.ID,
		"article_id", article.ID,
		"version_no", versionNo,
	)

	return comment, nil
}

// ListComments returns comments of a visible version, oldest first
func (s *commentService) ListComments(ctx context.Context, caller models.Caller, articleID string, versionNo int, includeArchived bool, page models.PageRequest) (*models.Page[wiki.Comment], error) {
	article, err := s.visibleVersion(ctx, caller, articleID, versionNo, includeArchived)
	if err != nil {
		return nil, err
	}

	page.ApplyDefaults(models.DefaultPageSize)
	comments, total, err := s.commentRepo.ListByVersion(ctx, article.ID, versionNo, page)
	if err != nil {
		return nil, err
	}
	return models.NewPage(comments, total, page), nil
}

// visibleVersion checks that the article and the version both exist and are visible
func (s *commentService) visibleVersion(ctx context.Context, caller models.Caller, articleID string, versionNo int, includeArchived bool) (*wiki.Article, error) {
	vis := wiki.NewVisibility(caller, includeArchived)
	article, err := s.validator.VisibleArticle(ctx, vis, articleID)
	if err != nil {
		return nil, err
	}
	if !vis.CanSeeVersion(article, versionNo) {
		return nil, versionNotFound(articleID, versionNo)
	}
	if _, err := s.versionRepo.GetByNumber(ctx, article.ID, versionNo); err != nil {
		return nil, err
	}
	return article, nil
}
