package handler

import (
	"context"
	"log/slog"
	"net/http"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService wikiSvc.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService wikiSvc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// CreateTag creates a tag
// POST /api/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req wikiSvc.CreateTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), httputil.GetCaller(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// ListTags lists tags by name
// GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	page, err := h.tagService.ListTags(r.Context(), pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// AttachTag tags an article; repeating it is a no-op
// PUT /api/articles/{id}/tags/{tagId}
func (h *TagHandler) AttachTag(w http.ResponseWriter, r *http.Request) {
	h.changeTag(w, r, h.tagService.AttachTag)
}

// DetachTag removes a tag from an article
// DELETE /api/articles/{id}/tags/{tagId}
func (h *TagHandler) DetachTag(w http.ResponseWriter, r *http.Request) {
	h.changeTag(w, r, h.tagService.DetachTag)
}

type tagOp func(ctx context.Context, caller models.Caller, articleID, tagID string) ([]wiki.TagSummary, error)

func (h *TagHandler) changeTag(w http.ResponseWriter, r *http.Request, op tagOp) {
	articleID, ok := IDParam(w, r, "id")
	if !ok {
		return
	}
	tagID, ok := IDParam(w, r, "tagId")
	if !ok {
		return
	}

	tags, err := op(r.Context(), httputil.GetCaller(r), articleID, tagID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tags": tags})
}
