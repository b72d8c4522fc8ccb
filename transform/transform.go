package transform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/resolver"
)

// SkipTypeOnly is reported for TypeScript type-only imports, which are erased at build time.
const SkipTypeOnly = "type-only import"

// Applied records the resolution of one discovered import.
type Applied struct {
	Import     ImportStatement
	Resolution resolver.Resolution
}

// Result is the outcome of transforming one file.
type Result struct {
	Path     string
	Source   []byte
	Changed  bool
	Imports  []Applied
	Warnings []config.Warning
}

// Rewrites returns the imports that were changed.
func (r Result) Rewrites() []Applied {
	var out []Applied
	for _, applied := range r.Imports {
		if applied.Resolution.Rewrite.Kind != resolver.RewriteNone {
			out = append(out, applied)
		}
	}
	return out
}

// Transformer rewrites platform-specific imports of source files. It holds no
// per-file state and may be shared by goroutines transforming different files.
type Transformer struct {
	options map[string]any
	root    string
	fs      resolver.FS
}

// New returns a Transformer for raw options. Options are normalized for every
// file so that a configuration error fails the file being transformed.
func New(options map[string]any, root string, fs resolver.FS) *Transformer {
	return &Transformer{options: options, root: root, fs: fs}
}

// TransformFile resolves every import of sourceCode. When nothing resolves the
// returned source is the input slice itself.
func (t *Transformer) TransformFile(ctx context.Context, filePath string, sourceCode []byte) (Result, error) {
	cfg, warnings, err := config.Normalize(t.options, t.root)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filePath, err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve path %s: %w", filePath, err)
	}

	imports, err := ParseImports(ctx, absPath, sourceCode)
	if err != nil {
		return Result{}, err
	}

	fileCtx := resolver.NewFileContext(cfg, absPath, t.fs)
	result := Result{Path: absPath, Warnings: warnings}

	var edits []edit
	for _, imp := range imports {
		if imp.TypeOnly {
			result.Imports = append(result.Imports, Applied{
				Import:     imp,
				Resolution: resolver.Resolution{Skip: SkipTypeOnly},
			})
			continue
		}

		res := fileCtx.Resolve(resolver.ImportRequest{
			Specifier: imp.Specifier,
			Binding:   primaryBinding(imp.Bindings),
			ReExport:  imp.ReExport,
		})
		result.Imports = append(result.Imports, Applied{Import: imp, Resolution: res})

		switch res.Rewrite.Kind {
		case resolver.RewriteDirect:
			edits = append(edits, edit{
				start: imp.SourceStart,
				end:   imp.SourceEnd,
				text:  renderSource(sourceCode[imp.SourceStart:imp.SourceEnd], res.Rewrite.Path),
			})
		case resolver.RewriteConditional:
			edits = append(edits, edit{
				start: imp.StmtStart,
				end:   imp.StmtEnd,
				text:  renderConditional(res.Rewrite, imp.Bindings, lineIndent(sourceCode, imp.StmtStart)),
			})
		}

		logging.Debug("resolved import", map[string]any{
			"file":      absPath,
			"line":      imp.Line,
			"specifier": imp.Specifier,
			"kind":      res.Rewrite.Kind.String(),
			"skip":      res.Skip,
		})
	}

	result.Source = applyEdits(sourceCode, edits)
	result.Changed = len(edits) > 0
	return result, nil
}

func primaryBinding(bindings []string) string {
	if len(bindings) == 0 {
		return ""
	}
	return bindings[0]
}
