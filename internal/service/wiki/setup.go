package wiki

import (
	"log/slog"

	"wikiflow/internal/domain/repositories"
	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"
)

// Services holds every wiki service
type Services struct {
	Spaces   wikiSvc.SpaceService
	Articles wikiSvc.ArticleService
	Versions wikiSvc.VersionService
	Reviews  wikiSvc.ReviewService
	Tags     wikiSvc.TagService
	Comments wikiSvc.CommentService
	Search   wikiSvc.SearchService
}

// SetupServices wires the wiki services over one repository set
func SetupServices(
	repos *repositories.Set,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) *Services {
	// Shared existence and visibility checks
	validator := NewResourceValidator(repos.Spaces, repos.Articles)

	return &Services{
		Spaces:   NewSpaceService(repos.Spaces, authorizer, recorder, logger),
		Articles: NewArticleService(repos.Articles, repos.Versions, repos.Tags, repos.Comments, repos.Tx, validator, authorizer, recorder, logger),
		Versions: NewVersionService(repos.Articles, repos.Versions, repos.Tx, validator, authorizer, recorder, logger),
		Reviews:  NewReviewService(repos.Articles, repos.Reviews, repos.Tx, authorizer, recorder, logger),
		Tags:     NewTagService(repos.Articles, repos.Tags, repos.Tx, authorizer, recorder, logger),
		Comments: NewCommentService(repos.Versions, repos.Comments, validator, authorizer, recorder, logger),
		Search:   NewSearchService(repos.Articles, validator, logger),
	}
}
