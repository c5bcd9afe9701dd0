package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"wikiflow/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response and logs the
// stack with the caller who triggered it.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				// Let net/http abort the connection silently
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.Error("panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"actor", httputil.GetCaller(r).Actor(),
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
