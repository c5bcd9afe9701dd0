package middleware

import (
	"net/http"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/httputil"
)

// RequireRole rejects callers holding none of roles with 403
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !httputil.GetCaller(r).HasRole(roles...) {
				httputil.RespondError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
