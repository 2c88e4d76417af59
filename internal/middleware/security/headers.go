// Package security applies response security headers.
package security

import (
	"net/http"
)

// HeadersConfig holds security header values.
type HeadersConfig struct {
	XFrameOptions       string
	XContentTypeOptions string
	ReferrerPolicy      string
	CrossOriginOpener   string
	CrossOriginResource string
	CacheControl        string
}

// DefaultHeadersConfig returns defaults suitable for a JSON API.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		XFrameOptions:       "DENY",
		XContentTypeOptions: "nosniff",
		ReferrerPolicy:      "strict-origin-when-cross-origin",
		CrossOriginOpener:   "same-origin",
		CrossOriginResource: "same-origin",
		CacheControl:        "no-store",
	}
}

// HeadersMiddleware applies the configured headers to every response.
type HeadersMiddleware struct {
	config HeadersConfig
}

func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{config: config}
}

// Middleware returns the HTTP middleware function.
func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		if h.config.XFrameOptions != "" {
			hdr.Set("X-Frame-Options", h.config.XFrameOptions)
		}
		if h.config.XContentTypeOptions != "" {
			hdr.Set("X-Content-Type-Options", h.config.XContentTypeOptions)
		}
		if h.config.ReferrerPolicy != "" {
			hdr.Set("Referrer-Policy", h.config.ReferrerPolicy)
		}
		if h.config.CrossOriginOpener != "" {
			hdr.Set("Cross-Origin-Opener-Policy", h.config.CrossOriginOpener)
		}
		if h.config.CrossOriginResource != "" {
			hdr.Set("Cross-Origin-Resource-Policy", h.config.CrossOriginResource)
		}
		if h.config.CacheControl != "" {
			hdr.Set("Cache-Control", h.config.CacheControl)
		}
		next.ServeHTTP(w, r)
	})
}
