package handler

import (
	"net/http"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Health  *HealthHandler
	Space   *SpaceHandler
	Article *ArticleHandler
	Review  *ReviewHandler
	Tag     *TagHandler
	Search  *SearchHandler

	// Activity is optional; the stream route is mounted only when set
	Activity *ActivityStreamHandler
}

// NewRouter registers all routes. Mutations are gated by role here and again
// by the services.
func NewRouter(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	editors := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)
	admins := middleware.RequireRole(models.RoleAdmin)
	edit := func(f http.HandlerFunc) http.Handler { return editors(f) }

	// Health check
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	// Space routes
	mux.Handle("POST /api/spaces", admins(http.HandlerFunc(h.Space.CreateSpace)))
	mux.HandleFunc("GET /api/spaces", h.Space.ListSpaces)
	mux.HandleFunc("GET /api/spaces/{spaceKey}", h.Space.GetSpace)
	mux.HandleFunc("GET /api/spaces/{spaceKey}/activity", h.Space.GetActivity)
	mux.HandleFunc("GET /api/spaces/{spaceKey}/search", h.Search.SearchArticles)
	if h.Activity != nil {
		mux.HandleFunc("GET /api/spaces/{spaceKey}/activity/stream", h.Activity.StreamActivity)
	}

	// Article routes
	mux.Handle("POST /api/spaces/{spaceKey}/articles", edit(h.Article.CreateArticle))
	mux.HandleFunc("GET /api/spaces/{spaceKey}/articles", h.Article.ListArticles)
	mux.HandleFunc("GET /api/spaces/{spaceKey}/articles/{slug}", h.Article.GetArticleBySlug)
	mux.HandleFunc("GET /api/articles/{id}", h.Article.GetArticle)
	mux.Handle("PATCH /api/articles/{id}", edit(h.Article.UpdateTitle))
	mux.Handle("POST /api/articles/{id}/archive", edit(h.Article.Archive))
	mux.Handle("POST /api/articles/{id}/unarchive", edit(h.Article.Unarchive))

	// Version and comment routes
	mux.Handle("POST /api/articles/{id}/versions", edit(h.Article.AddVersion))
	mux.HandleFunc("GET /api/articles/{id}/versions", h.Article.ListVersions)
	mux.HandleFunc("GET /api/articles/{id}/versions/{versionNo}", h.Article.GetVersion)
	mux.Handle("POST /api/articles/{id}/versions/{versionNo}/comments", edit(h.Article.AddComment))
	mux.HandleFunc("GET /api/articles/{id}/versions/{versionNo}/comments", h.Article.ListComments)

	// Tag routes
	mux.Handle("POST /api/tags", edit(h.Tag.CreateTag))
	mux.HandleFunc("GET /api/tags", h.Tag.ListTags)
	mux.Handle("PUT /api/articles/{id}/tags/{tagId}", edit(h.Tag.AttachTag))
	mux.Handle("DELETE /api/articles/{id}/tags/{tagId}", edit(h.Tag.DetachTag))

	// Review routes
	mux.Handle("POST /api/articles/{id}/reviews", edit(h.Review.Submit))
	mux.Handle("GET /api/reviews", edit(h.Review.ListReviews))
	mux.Handle("POST /api/reviews/{id}/approve", edit(h.Review.Approve))
	mux.Handle("POST /api/reviews/{id}/reject", edit(h.Review.Reject))

	// Audit
	mux.HandleFunc("GET /api/audit", h.Search.SearchAudit)

	return mux
}
