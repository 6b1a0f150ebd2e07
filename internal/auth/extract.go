package auth

import (
	"net/http"
	"strings"
)

// Extractor pulls a raw credential from one transport location.
type Extractor interface {
	Extract(r *http.Request) (string, bool)
}

type ExtractorFunc func(r *http.Request) (string, bool)

func (f ExtractorFunc) Extract(r *http.Request) (string, bool) { return f(r) }

// BearerHeader reads "Authorization: Bearer <token>".
func BearerHeader() Extractor {
	return ExtractorFunc(func(r *http.Request) (string, bool) {
		h := r.Header.Get("Authorization")
		if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
			return "", false
		}
		tok := strings.TrimSpace(h[7:])
		return tok, tok != ""
	})
}

// Header reads a custom header carrying the bare token.
func Header(name string) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, bool) {
		tok := strings.TrimSpace(r.Header.Get(name))
		return tok, tok != ""
	})
}

// Cookie reads the first non-empty cookie among names.
func Cookie(names ...string) Extractor {
	return ExtractorFunc(func(r *http.Request) (string, bool) {
		for _, n := range names {
			if c, err := r.Cookie(n); err == nil && c.Value != "" {
				return c.Value, true
			}
		}
		return "", false
	})
}

// DefaultExtractors is the priority order used by the storefront clients.
func DefaultExtractors() []Extractor {
	return []Extractor{
		BearerHeader(),
		Header("token"),
		Cookie("token", "jwt", "auth"),
	}
}

// Extract tries each extractor in order; the first hit wins.
func Extract(r *http.Request, extractors []Extractor) (string, bool) {
	for _, e := range extractors {
		if tok, ok := e.Extract(r); ok {
			return tok, true
		}
	}
	return "", false
}
