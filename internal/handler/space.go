package handler

import (
	"log/slog"
	"net/http"

	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/httputil"
)

// SpaceHandler handles space HTTP requests
type SpaceHandler struct {
	spaceService wikiSvc.SpaceService
	auditService services.AuditQueryService
	logger       *slog.Logger
}

// NewSpaceHandler creates a new space handler
func NewSpaceHandler(spaceService wikiSvc.SpaceService, auditService services.AuditQueryService, logger *slog.Logger) *SpaceHandler {
	return &SpaceHandler{
		spaceService: spaceService,
		auditService: auditService,
		logger:       logger,
	}
}

// CreateSpace creates a new space
// POST /api/spaces
func (h *SpaceHandler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var req wikiSvc.CreateSpaceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	space, err := h.spaceService.CreateSpace(r.Context(), httputil.GetCaller(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, space)
}

// ListSpaces lists spaces by key
// GET /api/spaces
func (h *SpaceHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	page, err := h.spaceService.ListSpaces(r.Context(), pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetSpace retrieves a space by key
// GET /api/spaces/{spaceKey}
func (h *SpaceHandler) GetSpace(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	space, err := h.spaceService.GetSpace(r.Context(), key)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, space)
}

// GetActivity returns the space's audit feed, newest first
// GET /api/spaces/{spaceKey}/activity
func (h *SpaceHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	page, err := h.auditService.SpaceActivity(r.Context(), httputil.GetCaller(r), key, pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}
