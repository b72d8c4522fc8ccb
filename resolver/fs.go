package resolver

import "github.com/spf13/afero"

// FS answers existence checks for candidate files. Lookups are never cached.
type FS interface {
	Exists(path string) bool
}

// AferoFS checks existence on an afero filesystem.
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS wraps fs.
func NewAferoFS(fs afero.Fs) AferoFS {
	return AferoFS{fs: fs}
}

// OSFS returns an FS backed by the real filesystem.
func OSFS() AferoFS {
	return NewAferoFS(afero.NewOsFs())
}

// Exists reports whether path exists; lookup errors count as missing.
func (a AferoFS) Exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}
