package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Option keys recognized in raw configuration.
const (
	KeyExtensions     = "extensions"
	KeyPlatforms      = "platforms"
	KeyOmitExtensions = "omitExtensions"
	KeyInclude        = "include"
)

var (
	// ErrNoExtensions is returned when the extensions option is missing or is not a list.
	ErrNoExtensions = errors.New("no extensions specified")

	// ErrInvalidInclude is returned for include entries that are not {match, dir} objects.
	ErrInvalidInclude = errors.New("invalid include rule")
)

// Normalize validates raw options and returns the canonical resolver configuration.
// Relative include directories are resolved against root.
func Normalize(raw map[string]any, root string) (Resolver, []Warning, error) {
	var cfg Resolver
	var warnings []Warning

	extensions, ok := stringList(lookup(raw, KeyExtensions))
	if !ok || len(extensions) == 0 {
		return Resolver{}, nil, ErrNoExtensions
	}
	cfg.Extensions = dotted(extensions)

	cfg.Platforms = append([]string(nil), DefaultPlatforms...)
	if platforms, ok := stringList(lookup(raw, KeyPlatforms)); ok && len(platforms) > 0 {
		cfg.Platforms = platforms
	}
	for _, platform := range cfg.Platforms {
		if platform == "ios" || platform == "android" {
			warnings = append(warnings, Warning{
				Option:  KeyPlatforms,
				Message: "use `os` instead of `ios` or `android`",
			})
			break
		}
	}

	cfg.OmitExtensions = append([]string(nil), DefaultOmitExtensions...)
	if omit, ok := stringList(lookup(raw, KeyOmitExtensions)); ok && len(omit) > 0 {
		cfg.OmitExtensions = dotted(omit)
	}

	include, err := includeRules(lookup(raw, KeyInclude), root)
	if err != nil {
		return Resolver{}, nil, err
	}
	cfg.Include = include

	return cfg, warnings, nil
}

// lookup finds key case-insensitively; viper lowercases keys it reads from files.
func lookup(raw map[string]any, key string) any {
	if v, ok := raw[key]; ok {
		return v
	}
	for k, v := range raw {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func dotted(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func includeRules(v any, root string) ([]IncludeRule, error) {
	if v == nil {
		return nil, nil
	}

	var entries []any
	switch list := v.(type) {
	case []IncludeRule:
		for _, rule := range list {
			entries = append(entries, map[string]any{"match": rule.Match, "dir": rule.Dir})
		}
	case []map[string]any:
		for _, m := range list {
			entries = append(entries, m)
		}
	case []any:
		entries = list
	default:
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrInvalidInclude, v)
	}

	rules := make([]IncludeRule, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %T", ErrInvalidInclude, i, entry)
		}
		match, _ := lookup(m, "match").(string)
		if match == "" {
			return nil, fmt.Errorf("%w: entry %d has no match", ErrInvalidInclude, i)
		}
		dir, _ := lookup(m, "dir").(string)
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		if dir != "" {
			dir = filepath.Clean(dir)
		}
		rules = append(rules, IncludeRule{Match: match, Dir: dir})
	}
	return rules, nil
}
