package middleware

import (
	"net/http"
)

type SecurityHeadersConfig struct {
	ContentSecurityPolicy string
}

// ConsoleCSP allows photos from the employee service and nothing else off-site.
func ConsoleCSP(photoOrigin string) string {
	img := "'self'"
	if photoOrigin != "" {
		img += " " + photoOrigin
	}
	return "default-src 'self'; img-src " + img + "; style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"
}

// SwaggerCSP lets the bundled Swagger UI run its inline bootstrap script.
func SwaggerCSP() string {
	return "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
}

func SecurityHeaders(config SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if config.ContentSecurityPolicy != "" {
				w.Header().Set("Content-Security-Policy", config.ContentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
