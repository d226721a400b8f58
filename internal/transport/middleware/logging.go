package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/employee-admin/pkg/logger"
)

// sensitiveFields are matched as substrings of lowercased header, form and JSON keys.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"key",
	"session",
	"credential",
	"auth",
	"jwt",
	"cookie",
}

// quietPaths are polled often enough that logging them drowns everything else.
var quietPaths = []string{"/api/v1/ping", "/api/v1/health", "/swagger/"}

const maxLoggedBody = 8 << 10

func LoggingMiddleware(lg *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isQuiet(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ctx := r.Context()
			reqLogger := logger.From(ctx)
			if lg != nil && logger.TraceID(ctx) == "" {
				reqLogger = lg
			}

			logRequest(reqLogger, r)

			ww := &responseWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(ww, r)

			logResponse(reqLogger, r, ww, time.Since(start))
		})
	}
}

// responseWriter records the status and size; only JSON bodies are kept.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.size += len(b)
	if mediaType(rw.Header().Get("Content-Type")) == "application/json" && rw.body.Len() < maxLoggedBody {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func logRequest(lg *slog.Logger, r *http.Request) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"query", filterSensitiveForm(r.URL.Query()),
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"headers", filterSensitiveHeaders(r.Header),
	}

	switch mt := mediaType(r.Header.Get("Content-Type")); {
	case mt == "multipart/form-data":
		// file parts stay unread; the handler parses the stream
		attrs = append(attrs, "body", "[multipart]")
	case r.Body != nil && r.Body != http.NoBody:
		raw, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
		r.Body = readCloser{io.MultiReader(bytes.NewReader(raw), r.Body), r.Body}
		if len(raw) > maxLoggedBody {
			attrs = append(attrs, "body", "[truncated]", "body_logged_bytes", maxLoggedBody)
			break
		}
		if mt == "application/x-www-form-urlencoded" {
			values, err := url.ParseQuery(string(raw))
			if err == nil {
				// form values carry personal data; info only sees the field names
				if lg.Enabled(r.Context(), slog.LevelDebug) {
					attrs = append(attrs, "form", filterSensitiveForm(values))
				} else {
					attrs = append(attrs, "form_fields", formKeys(values))
				}
				break
			}
		}
		attrs = append(attrs, "body", filterSensitiveBody(raw))
	}

	lg.Info("incoming request", attrs...)
}

// readCloser replays the logged prefix ahead of the unread body.
type readCloser struct {
	io.Reader
	io.Closer
}

func formKeys(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func logResponse(lg *slog.Logger, r *http.Request, rw *responseWriter, duration time.Duration) {
	statusCode := rw.statusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	attrs := []any{
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"response_size", rw.size,
	}
	if loc := rw.Header().Get("Location"); loc != "" {
		attrs = append(attrs, "location", loc)
	}
	if rw.body.Len() > 0 {
		attrs = append(attrs, "body", filterSensitiveBody(rw.body.Bytes()))
	}

	lg.Log(r.Context(), level, "response", attrs...)
}

func isQuiet(path string) bool {
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			filtered[name] = "[FILTERED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}

// filterSensitiveForm flattens form values for logging, masking sensitive keys.
func filterSensitiveForm(values url.Values) string {
	if len(values) == 0 {
		return ""
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := strings.Join(values[k], ",")
		if isSensitive(k) {
			v = "[FILTERED]"
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, "&")
}

func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		if isSensitive(string(body)) {
			return "[FILTERED - Contains sensitive data]"
		}
		if len(body) > maxLoggedBody {
			return string(body[:maxLoggedBody]) + "...[truncated]"
		}
		return string(body)
	}

	filtered, err := json.Marshal(filterSensitiveJSON(data))
	if err != nil {
		return "[ERROR - Failed to marshal filtered JSON]"
	}
	return string(filtered)
}

func filterSensitiveJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				filtered[key] = "[FILTERED]"
				continue
			}
			filtered[key] = filterSensitiveJSON(value)
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(v))
		for i, item := range v {
			filtered[i] = filterSensitiveJSON(item)
		}
		return filtered
	default:
		return v
	}
}
