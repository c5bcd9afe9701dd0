package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"wikiflow/internal/domain"
	"wikiflow/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Missing and hidden resources produce the same 404 body.
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var httpErr domain.HTTPError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &conflictErr):
		httputil.RespondProblem(w, httputil.NewProblem(conflictErr.StatusCode(), conflictErr.Message).
			With("resource_type", conflictErr.ResourceType))
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "forbidden")
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
