package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_OneCheckPerPlatform(t *testing.T) {
	fs := memFS(t, "/project/src/a.android.scss")
	p := NewProber(fs, "/project/src")

	chain := p.Probe("./a", ".scss", []string{"ios", "android", "native"})

	require.Len(t, chain, 3)
	assert.Equal(t, []string{
		"/project/src/a.ios.scss",
		"/project/src/a.android.scss",
		"/project/src/a.native.scss",
	}, fs.checked)
	assert.Equal(t, "./a.android.scss", chain[1].Path)
	assert.Equal(t, []int{1}, chain.Existing())
	assert.True(t, chain.Any())
}

func TestProbe_AbsoluteBaseIgnoresDir(t *testing.T) {
	fs := memFS(t, "/shared/a.rn.json")
	p := NewProber(fs, "/project/src")

	chain := p.Probe("/shared/a", ".json", []string{"rn"})

	assert.Equal(t, "/shared/a.rn.json", chain[0].Abs)
	assert.True(t, chain[0].Exists)
}

func TestProbe_NoneExist(t *testing.T) {
	p := NewProber(memFS(t), "/project")

	chain := p.Probe("./a", ".js", []string{"native", "rn"})

	assert.False(t, chain.Any())
	assert.Empty(t, chain.Existing())
}

func TestFallback_IndexTierAfterAllDirectTiers(t *testing.T) {
	fs := memFS(t, "/project/src/app/index.native.ts")
	p := NewProber(fs, "/project/src")

	chain, ok := p.Fallback("./app", []string{".tsx", ".ts"}, []string{"native"})

	require.True(t, ok)
	assert.Equal(t, "./app/index.native.ts", chain[0].Path)
	assert.Equal(t, []string{
		"/project/src/app.native.tsx",
		"/project/src/app.native.ts",
		"/project/src/app/index.native.tsx",
		"/project/src/app/index.native.ts",
	}, fs.checked)
}

func TestFallback_TrailingSlash(t *testing.T) {
	fs := memFS(t, "/project/src/app/index.rn.js")
	p := NewProber(fs, "/project/src")

	chain, ok := p.Fallback("./app/", []string{".js"}, []string{"rn"})

	require.True(t, ok)
	assert.Equal(t, "./app/index.rn.js", chain[0].Path)
}

func TestFallback_NothingFound(t *testing.T) {
	p := NewProber(memFS(t), "/project/src")

	chain, ok := p.Fallback("./app", []string{".js"}, []string{"native"})

	assert.False(t, ok)
	assert.Nil(t, chain)
}
