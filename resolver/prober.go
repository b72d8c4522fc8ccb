package resolver

import (
	"path/filepath"
	"strings"
)

// Candidate is one platform variant of an import specifier.
type Candidate struct {
	Platform string
	// Path is the specifier as it would be written into the rewritten import.
	Path string
	// Abs is the filesystem path that was checked.
	Abs    string
	Exists bool
}

// ExistenceChain holds one candidate per platform, in platform priority order.
type ExistenceChain []Candidate

// Existing returns the indices of candidates that exist, highest priority first.
func (c ExistenceChain) Existing() []int {
	var existing []int
	for i, candidate := range c {
		if candidate.Exists {
			existing = append(existing, i)
		}
	}
	return existing
}

// Any reports whether at least one candidate exists.
func (c ExistenceChain) Any() bool {
	for _, candidate := range c {
		if candidate.Exists {
			return true
		}
	}
	return false
}

// Prober checks platform candidates relative to a base directory.
type Prober struct {
	fs  FS
	dir string
}

// NewProber returns a Prober resolving relative candidates against dir.
func NewProber(fs FS, dir string) Prober {
	return Prober{fs: fs, dir: dir}
}

// Probe builds the chain for base + "." + platform + ext, one existence check per platform.
func (p Prober) Probe(base, ext string, platforms []string) ExistenceChain {
	chain := make(ExistenceChain, 0, len(platforms))
	for _, platform := range platforms {
		candidate := base + "." + platform + ext
		abs := p.abs(candidate)
		chain = append(chain, Candidate{
			Platform: platform,
			Path:     candidate,
			Abs:      abs,
			Exists:   p.fs.Exists(abs),
		})
	}
	return chain
}

func (p Prober) abs(candidate string) string {
	native := filepath.FromSlash(candidate)
	if filepath.IsAbs(native) || strings.HasPrefix(candidate, "/") {
		return filepath.Clean(native)
	}
	return filepath.Join(p.dir, native)
}
