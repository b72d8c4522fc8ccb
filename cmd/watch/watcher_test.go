package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevantChange(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "source write", event: fsnotify.Event{Name: "/p/src/App.js", Op: fsnotify.Write}, want: true},
		{name: "variant created", event: fsnotify.Event{Name: "/p/src/styles.ios.scss", Op: fsnotify.Create}, want: true},
		{name: "variant removed", event: fsnotify.Event{Name: "/p/src/styles.ios.scss", Op: fsnotify.Remove}, want: true},
		{name: "renamed", event: fsnotify.Event{Name: "/p/src/a.js", Op: fsnotify.Rename}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/p/src/App.js", Op: fsnotify.Chmod}, want: false},
		{name: "output written", event: fsnotify.Event{Name: filepath.Join(outDir, "App.js"), Op: fsnotify.Write}, want: false},
		{name: "output dir itself", event: fsnotify.Event{Name: outDir, Op: fsnotify.Create}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRelevantChange(tc.event, outDir))
		})
	}
}

func TestAddWatchDirsSkipsIgnoredAndOutputDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"src/components", "node_modules/lib", ".git/objects", "out/src"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	var added []string
	adder := func(path string) error {
		added = append(added, path)
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, filepath.Join(root, "out"), adder))

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "components"),
	}, added)
}

func TestAddWatchDirsIgnoresMissingDirectoriesFromAdder(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "missing-dir")
	require.NoError(t, os.MkdirAll(target, 0o755))

	adder := func(path string) error {
		if path == target {
			return fs.ErrNotExist
		}
		return nil
	}

	assert.NoError(t, addWatchDirsWithAdder(root, filepath.Join(root, "out"), adder))
}

func TestAddWatchDirsSkipsBrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on Windows")
	}

	root := t.TempDir()
	linkPath := filepath.Join(root, "linked")
	require.NoError(t, os.Symlink("missing/target", linkPath))

	var added []string
	adder := func(path string) error {
		added = append(added, path)
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, filepath.Join(root, "out"), adder))
	assert.NotContains(t, added, linkPath)
}
