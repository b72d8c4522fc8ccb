package resolver

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/platformext/config"
)

const nodeModulesDir = "node_modules"

// ImportRequest is one import statement of the file a FileContext was created for.
type ImportRequest struct {
	Specifier string
	// Binding is the local name (or object pattern) the import binds.
	// Empty means the import runs only for its side effects.
	Binding string
	// ReExport marks `export ... from` statements, which cannot take a runtime conditional.
	ReExport bool
}

// Skip reasons reported with RewriteNone.
const (
	SkipExcludedFile    = "file is under node_modules"
	SkipBareSpecifier   = "bare specifier without include rule"
	SkipNoCandidate     = "no platform candidate exists"
	SkipReExportRuntime = "re-export needs a runtime platform check"
)

// Resolution is the outcome of resolving one import.
type Resolution struct {
	Rewrite Rewrite
	Chain   ExistenceChain
	// Fallback is set when the chain came from the omitted-extension search.
	Fallback bool
	// Skip explains a RewriteNone result.
	Skip string
}

// FileContext carries the resolver state of a single source file. A new one must
// be created for every file; it is not safe for concurrent use.
type FileContext struct {
	cfg       config.Resolver
	fs        FS
	platforms []string

	filePath        string
	dir             string
	excluded        bool
	preludeInjected bool
}

// NewFileContext prepares resolution for the file at filePath (absolute).
func NewFileContext(cfg config.Resolver, filePath string, fs FS) *FileContext {
	c := &FileContext{
		cfg:       cfg,
		fs:        fs,
		platforms: ExpandPlatforms(cfg.Platforms),
		filePath:  filePath,
		dir:       filepath.Dir(filePath),
		excluded:  inNodeModules(filePath),
	}

	if rule, ok := cfg.MatchInclude(filepath.ToSlash(filePath)); ok {
		c.excluded = false
		if rule.Dir != "" {
			c.dir = rule.Dir
		}
	}

	return c
}

// FilePath is the path of the file being transformed.
func (c *FileContext) FilePath() string {
	return c.filePath
}

// Dir is the effective base directory relative specifiers are probed against.
func (c *FileContext) Dir() string {
	return c.dir
}

// Platforms is the expanded platform priority, highest first.
func (c *FileContext) Platforms() []string {
	return c.platforms
}

// Excluded reports whether the file lies under node_modules without a matching include rule.
func (c *FileContext) Excluded() bool {
	return c.excluded
}

// PreludeInjected reports whether a conditional rewrite has already claimed the prelude.
func (c *FileContext) PreludeInjected() bool {
	return c.preludeInjected
}

// Resolve decides the rewrite for req. The first conditional rewrite of the
// file is marked to inject the platform prelude.
func (c *FileContext) Resolve(req ImportRequest) Resolution {
	if c.excluded {
		return Resolution{Skip: SkipExcludedFile}
	}

	dir, ok := c.baseDir(req.Specifier)
	if !ok {
		return Resolution{Skip: SkipBareSpecifier}
	}
	prober := NewProber(c.fs, dir)

	var res Resolution
	ext := path.Ext(req.Specifier)
	if c.cfg.HasExtension(ext) {
		res.Chain = prober.Probe(strings.TrimSuffix(req.Specifier, ext), ext, c.platforms)
	} else {
		chain, found := prober.Fallback(req.Specifier, c.cfg.OmitExtensions, c.platforms)
		if !found {
			return Resolution{Skip: SkipNoCandidate}
		}
		res.Chain = chain
		res.Fallback = true
	}

	res.Rewrite = Synthesize(req.Specifier, res.Chain)
	switch res.Rewrite.Kind {
	case RewriteNone:
		res.Skip = SkipNoCandidate
	case RewriteConditional:
		if req.ReExport {
			res.Rewrite = Rewrite{Kind: RewriteNone}
			res.Skip = SkipReExportRuntime
			break
		}
		if !c.preludeInjected {
			res.Rewrite.InjectPrelude = true
			c.preludeInjected = true
		}
	}

	return res
}

func (c *FileContext) baseDir(specifier string) (string, bool) {
	if isRelative(specifier) || strings.HasPrefix(specifier, "/") {
		return c.dir, true
	}
	if rule, ok := c.cfg.MatchInclude(specifier); ok {
		if rule.Dir != "" {
			return rule.Dir, true
		}
		return c.dir, true
	}
	return "", false
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

func inNodeModules(filePath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filePath), "/") {
		if part == nodeModulesDir {
			return true
		}
	}
	return false
}
