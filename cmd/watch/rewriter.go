package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/resolver"
	"github.com/LegacyCodeHQ/platformext/transform"
)

// rewriter rebuilds the output directory. Options and the file list are
// reloaded on every rebuild so config edits and new files are picked up.
type rewriter struct {
	mu       sync.Mutex
	root     string
	outDir   string
	opts     *watchOptions
	cache    *digestCache
	warnings cmdutil.WarningReporter
}

func newRewriter(root, outDir string, opts *watchOptions) (*rewriter, error) {
	cache, err := newDigestCache(opts.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("invalid cache size %d: %w", opts.cacheSize, err)
	}
	return &rewriter{root: root, outDir: outDir, opts: opts, cache: cache}, nil
}

// rebuild transforms every input file and writes the outputs whose content
// changed. It returns the number of files written.
func (r *rewriter) rebuild(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	options, err := r.opts.resolver.Options(r.root)
	if err != nil {
		return 0, err
	}

	expanded, err := cmdutil.ExpandPaths(r.opts.inputs, cmdutil.IncludeRules(options, r.root))
	if err != nil {
		return 0, fmt.Errorf("failed to expand paths: %w", err)
	}
	var files []string
	for _, file := range expanded {
		if !r.inOutDir(file) {
			files = append(files, file)
		}
	}

	tr := transform.New(options, r.root, resolver.OSFS())
	outcomes := cmdutil.TransformFiles(ctx, tr, files, r.opts.jobs)
	r.warnings.Report(outcomes)

	written := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logging.Error("transform failed", map[string]any{"file": outcome.Path, "error": outcome.Err})
			continue
		}

		target, err := cmdutil.OutputPath(r.root, r.outDir, outcome.Path)
		if err != nil {
			return written, err
		}
		if !r.cache.changed(target, outcome.Result.Source) {
			continue
		}
		if err := cmdutil.WriteFile(target, outcome.Result.Source); err != nil {
			r.cache.forget(target)
			return written, err
		}
		written++
	}

	logging.Info("rewrite finished", map[string]any{"files": len(outcomes), "written": written})
	return written, cmdutil.Errors(outcomes)
}

func (r *rewriter) inOutDir(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return isWithin(r.outDir, abs)
}

// watchRoots are the directories watched recursively: every input directory,
// and the parent of every input file.
func (r *rewriter) watchRoots() []string {
	var roots []string
	for _, input := range r.opts.inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		if transform.IsSupportedFile(abs) {
			abs = filepath.Dir(abs)
		}
		roots = append(roots, abs)
	}
	return roots
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
