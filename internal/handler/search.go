package handler

import (
	"log/slog"
	"net/http"

	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/httputil"
)

// SearchHandler handles article search and audit queries
type SearchHandler struct {
	searchService wikiSvc.SearchService
	auditService  services.AuditQueryService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService wikiSvc.SearchService, auditService services.AuditQueryService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		auditService:  auditService,
		logger:        logger,
	}
}

// SearchArticles matches titles and latest content within a space
// GET /api/spaces/{spaceKey}/search?q=
func (h *SearchHandler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	key, ok := PathParam(w, r, "spaceKey", "Space key")
	if !ok {
		return
	}

	req := &wikiSvc.SearchRequest{
		SpaceKey:        key,
		Query:           r.URL.Query().Get("q"),
		IncludeArchived: includeArchived(r),
		Page:            pageRequest(r),
	}

	page, err := h.searchService.Search(r.Context(), httputil.GetCaller(r), req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// SearchAudit filters the audit trail
// GET /api/audit?space_key=&article_id=&actor_id=&actor=&event_type=&entity_type=&entity_id=&from=&to=
func (h *SearchHandler) SearchAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &services.AuditSearchRequest{
		SpaceKey:   q.Get("space_key"),
		ArticleID:  q.Get("article_id"),
		ActorID:    q.Get("actor_id"),
		Actor:      q.Get("actor"),
		EventType:  q.Get("event_type"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		Page:       pageRequest(r),
	}

	page, err := h.auditService.Search(r.Context(), httputil.GetCaller(r), req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}
