package resolver

import (
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceFile = "/project/src/App.tsx"

// countingFS records every existence check.
type countingFS struct {
	FS
	checked []string
}

func (c *countingFS) Exists(path string) bool {
	c.checked = append(c.checked, path)
	return c.FS.Exists(path)
}

func memFS(t *testing.T, files ...string) *countingFS {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, afero.WriteFile(fs, file, []byte("x"), 0644))
	}
	return &countingFS{FS: NewAferoFS(fs)}
}

func normalized(t *testing.T, raw map[string]any) config.Resolver {
	t.Helper()
	cfg, _, err := config.Normalize(raw, "/project")
	require.NoError(t, err)
	return cfg
}

func scssConfig(t *testing.T) config.Resolver {
	return normalized(t, map[string]any{"extensions": []string{".scss"}})
}

func TestResolve_IOSAndAndroid(t *testing.T) {
	fs := memFS(t, "/project/src/styles.ios.scss", "/project/src/styles.android.scss")
	ctx := NewFileContext(scssConfig(t), sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})

	assert.Equal(t, Rewrite{
		Kind:          RewriteConditional,
		Platform:      "ios",
		TruePath:      "./styles.ios.scss",
		FalsePath:     "./styles.android.scss",
		InjectPrelude: true,
	}, res.Rewrite)
	assert.False(t, res.Fallback)
	assert.Equal(t, []string{
		"/project/src/styles.ios.scss",
		"/project/src/styles.android.scss",
		"/project/src/styles.native.scss",
		"/project/src/styles.rn.scss",
	}, fs.checked)
}

func TestResolve_NativeFirstPriority(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"platforms":  []string{"native", "os", "rn"},
		"extensions": []string{".scss"},
	})
	fs := memFS(t, "/project/src/styles.native.scss")
	ctx := NewFileContext(cfg, sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})

	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./styles.native.scss"}, res.Rewrite)
	assert.False(t, ctx.PreludeInjected())
}

func TestResolve_NoCandidateIsNoop(t *testing.T) {
	ctx := NewFileContext(scssConfig(t), sourceFile, memFS(t, "/project/src/styles.scss"))

	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})

	assert.Equal(t, RewriteNone, res.Rewrite.Kind)
	assert.Equal(t, SkipNoCandidate, res.Skip)
}

func TestResolve_UnconfiguredExtensionIsNotProbedDirectly(t *testing.T) {
	cfg := normalized(t, map[string]any{"extensions": []string{".txt", ".json"}})
	fs := memFS(t, "/project/src/styles.ios.scss", "/project/src/styles.android.scss")
	ctx := NewFileContext(cfg, sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})

	assert.Equal(t, RewriteNone, res.Rewrite.Kind)
	for _, checked := range fs.checked {
		assert.NotEqual(t, "/project/src/styles.ios.scss", checked)
	}
}

func TestResolve_PreludeOncePerFile(t *testing.T) {
	fs := memFS(t,
		"/project/src/styles.ios.scss", "/project/src/styles.android.scss",
		"/project/src/other.ios.scss", "/project/src/other.native.scss",
	)
	ctx := NewFileContext(scssConfig(t), sourceFile, fs)

	first := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})
	second := ctx.Resolve(ImportRequest{Specifier: "./other.scss"})

	assert.True(t, first.Rewrite.InjectPrelude)
	assert.False(t, second.Rewrite.InjectPrelude)
	assert.Equal(t, "./other.native.scss", second.Rewrite.FalsePath)

	next := NewFileContext(scssConfig(t), "/project/src/Other.tsx", fs)
	third := next.Resolve(ImportRequest{Specifier: "./styles.scss"})
	assert.True(t, third.Rewrite.InjectPrelude, "a new file starts without the prelude")
}

func TestResolve_OmittedExtension(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx", ".jsx", ".ts", ".js"},
	})
	ctx := NewFileContext(cfg, sourceFile, memFS(t, "/project/src/app.rn.tsx"))

	res := ctx.Resolve(ImportRequest{Specifier: "./app", Binding: "app"})

	assert.True(t, res.Fallback)
	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./app.rn.tsx"}, res.Rewrite)
}

func TestResolve_OmittedExtensionFirstTierWins(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx", ".js"},
	})
	ctx := NewFileContext(cfg, sourceFile, memFS(t, "/project/src/app.native.js", "/project/src/app.rn.tsx"))

	res := ctx.Resolve(ImportRequest{Specifier: "./app", Binding: "app"})

	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./app.rn.tsx"}, res.Rewrite)
	for _, candidate := range res.Chain {
		assert.True(t, strings.HasSuffix(candidate.Path, ".tsx"), "tiers must not be merged: %s", candidate.Path)
	}
}

func TestResolve_DirectoryIndex(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx", ".jsx", ".ts", ".js"},
	})

	for _, specifier := range []string{"./app", "./app/"} {
		t.Run(specifier, func(t *testing.T) {
			ctx := NewFileContext(cfg, sourceFile, memFS(t, "/project/src/app/index.rn.tsx"))

			res := ctx.Resolve(ImportRequest{Specifier: specifier, Binding: "app"})

			assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./app/index.rn.tsx"}, res.Rewrite)
		})
	}
}

func TestResolve_DirectTiersExhaustedBeforeIndex(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx", ".js"},
	})
	fs := memFS(t, "/project/src/app/index.native.tsx", "/project/src/app.rn.js")
	ctx := NewFileContext(cfg, sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "./app", Binding: "app"})

	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./app.rn.js"}, res.Rewrite)
	for _, checked := range fs.checked {
		assert.NotContains(t, checked, "/index.", "directory tier must not be probed")
	}
}

func TestResolve_AbsoluteSpecifier(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx", ".jsx", ".ts", ".js"},
	})

	ctx := NewFileContext(cfg, sourceFile, memFS(t, "/app.rn.tsx"))
	res := ctx.Resolve(ImportRequest{Specifier: "/app", Binding: "app"})
	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "/app.rn.tsx"}, res.Rewrite)

	ctx = NewFileContext(cfg, sourceFile, memFS(t, "/app/index.native.ts"))
	res = ctx.Resolve(ImportRequest{Specifier: "/app", Binding: "app"})
	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "/app/index.native.ts"}, res.Rewrite)
}

func TestResolve_BareSpecifierIgnored(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions":     []string{".ts"},
		"omitExtensions": []string{".tsx"},
	})
	fs := memFS(t, "/project/src/app.rn.tsx")
	ctx := NewFileContext(cfg, sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "app", Binding: "app"})

	assert.Equal(t, RewriteNone, res.Rewrite.Kind)
	assert.Equal(t, SkipBareSpecifier, res.Skip)
	assert.Empty(t, fs.checked)
}

func TestResolve_BareSpecifierWhitelistedByInclude(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions": []string{".scss"},
		"include": []any{
			map[string]any{"match": "@acme/theme", "dir": "/project/node_modules"},
		},
	})
	ctx := NewFileContext(cfg, sourceFile, memFS(t, "/project/node_modules/@acme/theme/colors.native.scss"))

	res := ctx.Resolve(ImportRequest{Specifier: "@acme/theme/colors.scss", Binding: "colors"})

	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "@acme/theme/colors.native.scss"}, res.Rewrite)
}

func TestResolve_IncludeOverridesFileDirectory(t *testing.T) {
	cfg := normalized(t, map[string]any{
		"extensions": []string{".scss"},
		"include": []any{
			map[string]any{"match": "src/", "dir": "/project/first"},
			map[string]any{"match": "src/App", "dir": "/project/themes"},
		},
	})
	ctx := NewFileContext(cfg, sourceFile, memFS(t, "/project/themes/styles.rn.scss", "/project/src/styles.native.scss"))

	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})

	assert.Equal(t, "/project/themes", ctx.Dir())
	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./styles.rn.scss"}, res.Rewrite)
}

func TestResolve_NodeModulesExcluded(t *testing.T) {
	file := "/project/node_modules/lib/index.js"
	fs := memFS(t, "/project/node_modules/lib/styles.native.scss")

	ctx := NewFileContext(scssConfig(t), file, fs)
	res := ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})
	assert.True(t, ctx.Excluded())
	assert.Equal(t, SkipExcludedFile, res.Skip)

	cfg := normalized(t, map[string]any{
		"extensions": []string{".scss"},
		"include":    []any{map[string]any{"match": "node_modules/lib"}},
	})
	ctx = NewFileContext(cfg, file, fs)
	res = ctx.Resolve(ImportRequest{Specifier: "./styles.scss", Binding: "styles"})
	assert.False(t, ctx.Excluded())
	assert.Equal(t, Rewrite{Kind: RewriteDirect, Path: "./styles.native.scss"}, res.Rewrite)
}

func TestResolve_ReExportSkipsConditional(t *testing.T) {
	fs := memFS(t, "/project/src/theme.ios.scss", "/project/src/theme.android.scss", "/project/src/styles.ios.scss")
	ctx := NewFileContext(scssConfig(t), sourceFile, fs)

	res := ctx.Resolve(ImportRequest{Specifier: "./theme.scss", ReExport: true})
	assert.Equal(t, RewriteNone, res.Rewrite.Kind)
	assert.Equal(t, SkipReExportRuntime, res.Skip)
	assert.False(t, ctx.PreludeInjected())

	res = ctx.Resolve(ImportRequest{Specifier: "./styles.scss"})
	assert.True(t, res.Rewrite.InjectPrelude)
}

func TestResolve_LookupsAreNotCached(t *testing.T) {
	fs := memFS(t, "/project/src/styles.native.scss")
	ctx := NewFileContext(scssConfig(t), sourceFile, fs)

	ctx.Resolve(ImportRequest{Specifier: "./styles.scss"})
	ctx.Resolve(ImportRequest{Specifier: "./styles.scss"})

	assert.Len(t, fs.checked, 8)
}
