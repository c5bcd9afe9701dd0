package httputil

import (
	"context"
	"net/http"

	"wikiflow/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	callerKey contextKey = "caller"
)

// WithCaller adds the authenticated caller to the request context
func WithCaller(r *http.Request, caller models.Caller) *http.Request {
	ctx := context.WithValue(r.Context(), callerKey, caller)
	return r.WithContext(ctx)
}

// GetCaller retrieves the caller from context. Requests that bypassed
// authentication act as an anonymous viewer.
func GetCaller(r *http.Request) models.Caller {
	caller, ok := r.Context().Value(callerKey).(models.Caller)
	if !ok {
		return models.NewCaller("", models.RoleViewer)
	}
	return caller
}
