// Package slug allocates URL identities for mini stores.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// reserved slugs collide with storefront routes. Compared after normalization.
var reserved = map[string]struct{}{
	"":               {},
	"home":           {},
	"about":          {},
	"contact":        {},
	"collection":     {},
	"collections":    {},
	"cart":           {},
	"checkout":       {},
	"privacy-policy": {},
	"terms":          {},
	"return-refund":  {},
	"faqs":           {},
	"login":          {},
	"signup":         {},
	"admin":          {},
	"api":            {},
	"sitemap.xml":    {},
	"robots.txt":     {},
	"search":         {},
	"account":        {},
	"orders":         {},
	"product":        {},
}

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	valid    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// IsReserved reports whether s is a reserved route name, case-insensitively.
func IsReserved(s string) bool {
	_, ok := reserved[strings.ToLower(s)]
	return ok
}

// Valid reports whether s has the canonical slug shape.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// Normalize lower-cases s, turns each run of non [a-z0-9] characters into one
// hyphen and strips leading and trailing hyphens.
func Normalize(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// ExistsFunc probes storage for a store with the given slug.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

type Allocator struct {
	exists ExistsFunc
	now    func() time.Time
}

func NewAllocator(exists ExistsFunc) *Allocator {
	return &Allocator{exists: exists, now: time.Now}
}

// WithClock replaces the clock used for the store-<millis> fallback.
func (a *Allocator) WithClock(now func() time.Time) *Allocator {
	a.now = now
	return a
}

// Allocate returns a normalized, non-reserved slug that no stored entity uses at
// call time. requested wins over displayName when it is non-blank.
//
// Nothing is reserved here: two concurrent callers can receive the same slug, and
// the unique index on the store collection turns the loser into a conflict.
// Each collision costs one storage round trip.
func (a *Allocator) Allocate(ctx context.Context, requested, displayName string) (string, error) {
	source := strings.TrimSpace(requested)
	if source == "" {
		source = displayName
	}

	base := Normalize(source)
	if IsReserved(base) {
		base = fmt.Sprintf("store-%d", a.now().UnixMilli())
	}

	candidate := base
	for n := 1; ; n++ {
		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
