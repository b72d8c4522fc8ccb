package config

import (
	"slices"
	"strings"
)

// DefaultPlatforms is the platform priority used when none is configured.
var DefaultPlatforms = []string{"os", "native", "rn"}

// DefaultOmitExtensions are the extensions tried, in order, when an import
// specifier has no configured extension.
var DefaultOmitExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// IncludeRule maps a path substring to an override base directory.
type IncludeRule struct {
	Match string
	Dir   string
}

// Resolver is the normalized, read-only configuration of the platform resolver.
type Resolver struct {
	Extensions     []string
	Platforms      []string
	OmitExtensions []string
	Include        []IncludeRule
}

// HasExtension reports whether ext (dot-prefixed) is one of the configured extensions.
func (r Resolver) HasExtension(ext string) bool {
	if ext == "" {
		return false
	}
	return slices.Contains(r.Extensions, ext)
}

// MatchInclude returns the last include rule whose Match is a substring of p.
func (r Resolver) MatchInclude(p string) (IncludeRule, bool) {
	for i := len(r.Include) - 1; i >= 0; i-- {
		if strings.Contains(p, r.Include[i].Match) {
			return r.Include[i], true
		}
	}
	return IncludeRule{}, false
}

// Warning is an advisory configuration problem that does not change behavior.
type Warning struct {
	Option  string
	Message string
}
