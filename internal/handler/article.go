package handler

import (
	"log/slog"
	"net/http"

	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/httputil"
)

// ArticleHandler handles article, version and comment HTTP requests
type ArticleHandler struct {
	articleService wikiSvc.ArticleService
	versionService wikiSvc.VersionService
	commentService wikiSvc.CommentService
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(
	articleService wikiSvc.ArticleService,
	versionService wikiSvc.VersionService,
	commentService wikiSvc.CommentService,
	logger *slog.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		versionService: versionService,
		commentService: commentService,
		logger:         logger,
	}
}

// CreateArticle creates a DRAFT article with its first version
// POST /api/spaces/{spaceKey}/articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	var req wikiSvc.CreateArticleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(r.Context(), httputil.GetCaller(r), key, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, article)
}

// ListArticles lists the visible articles of a space
// GET /api/spaces/{spaceKey}/articles?include_archived=
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	page, err := h.articleService.ListArticles(r.Context(), httputil.GetCaller(r), key, includeArchived(r), pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetArticleBySlug retrieves an article by slug
// GET /api/spaces/{spaceKey}/articles/{slug}
func (h *ArticleHandler) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}
	slug, ok := PathParam(w, r, "slug", "Slug")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticleBySlug(r.Context(), httputil.GetCaller(r), key, slug, includeArchived(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// GetArticle retrieves an article by ID
// GET /api/articles/{id}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(r.Context(), httputil.GetCaller(r), id, includeArchived(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// UpdateTitle renames a DRAFT article
// PATCH /api/articles/{id}
func (h *ArticleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	var req wikiSvc.UpdateTitleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	article, err := h.articleService.UpdateTitle(r.Context(), httputil.GetCaller(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// Archive archives an article
// POST /api/articles/{id}/archive
func (h *ArticleHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Archive(r.Context(), httputil.GetCaller(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// Unarchive restores an archived article to DRAFT
// POST /api/articles/{id}/unarchive
func (h *ArticleHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Unarchive(r.Context(), httputil.GetCaller(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, article)
}

// AddVersion appends a version to a DRAFT article
// POST /api/articles/{id}/versions
func (h *ArticleHandler) AddVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	var req wikiSvc.AddVersionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	version, err := h.versionService.AddVersion(r.Context(), httputil.GetCaller(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, version)
}

// ListVersions lists an article's visible versions
// GET /api/articles/{id}/versions
func (h *ArticleHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	page, err := h.versionService.ListVersions(r.Context(), httputil.GetCaller(r), id, includeArchived(r), pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetVersion retrieves one version
// GET /api/articles/{id}/versions/{versionNo}
func (h *ArticleHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}
	versionNo, ok := VersionParam(w, r)
	if !ok {
		return
	}

	version, err := h.versionService.GetVersion(r.Context(), httputil.GetCaller(r), id, versionNo, includeArchived(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, version)
}

// AddComment comments on a version
// POST /api/articles/{id}/versions/{versionNo}/comments
func (h *ArticleHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}
	versionNo, ok := VersionParam(w, r)
	if !ok {
		return
	}

	var req wikiSvc.AddCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), httputil.GetCaller(r), id, versionNo, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments lists a version's comments, oldest first
// GET /api/articles/{id}/versions/{versionNo}/comments
func (h *ArticleHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}
	versionNo, ok := VersionParam(w, r)
	if !ok {
		return
	}

	page, err := h.commentService.ListComments(r.Context(), httputil.GetCaller(r), id, versionNo, includeArchived(r), pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}
