package handler

import (
	"log/slog"
	"net/http"

	wikiSvc "wikiflow/internal/domain/services/wiki"
	"wikiflow/internal/httputil"
)

// ReviewHandler handles review workflow HTTP requests
type ReviewHandler struct {
	reviewService wikiSvc.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService wikiSvc.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// Submit opens a review request for a DRAFT article
// POST /api/articles/{id}/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Submit(r.Context(), httputil.GetCaller(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, review)
}

// ListReviews lists review requests, newest first
// GET /api/reviews?status=
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	page, err := h.reviewService.ListReviews(r.Context(), httputil.GetCaller(r), status, pageRequest(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// Approve publishes the reviewed article
// POST /api/reviews/{id}/approve
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Approve(r.Context(), httputil.GetCaller(r), id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, review)
}

// Reject sends the reviewed article back to DRAFT
// POST /api/reviews/{id}/reject
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := IDParam(w, r, "id")
	if !ok {
		return
	}

	var req wikiSvc.RejectReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.reviewService.Reject(r.Context(), httputil.GetCaller(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, review)
}
