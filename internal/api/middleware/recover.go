package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
)

// Recover turns panics from lower layers into the uniform 500 rendering
// instead of killing the connection without a body. The panic value stays in
// the logs only.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: Propagating the handler-abort sentinel
					panic(rec)
				}
				slog.Error("panic recovered in request handler",
					slog.Any("panic", rec),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("trace_id", shared.GetTraceID(r.Context())),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithAPIError(w, r, shared.APIError{
					Status:  http.StatusInternalServerError,
					Code:    shared.CodeHTTPError,
					Message: "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
