package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/pkg/logger"
)

// RecoveryMiddleware turns a handler panic into a 500. JSON callers get an
// AppError body, browsers a plain page.
func RecoveryMiddleware(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				lg.Error("panic recovered",
					"error", rec,
					"trace_id", logger.TraceID(r.Context()),
					"method", r.Method,
					"url", r.URL.Path,
					"stack", string(debug.Stack()))

				if wantsJSON(r) {
					status, body := internal.NewInternalError("internal server error", nil).ToHTTPResponse()
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					_ = json.NewEncoder(w).Encode(body)
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		mediaType(r.Header.Get("Content-Type")) == "application/json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
