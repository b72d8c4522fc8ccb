package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/transform"
	"golang.org/x/sync/errgroup"
)

// FileOutcome is the result of transforming one file read from disk.
type FileOutcome struct {
	Path   string
	Result transform.Result
	Err    error
}

// DefaultJobs is the default number of files transformed concurrently.
func DefaultJobs() int {
	return runtime.GOMAXPROCS(0)
}

// TransformFiles reads and transforms files with at most jobs in flight.
// A failing file does not stop the others; outcomes keep the order of files.
func TransformFiles(ctx context.Context, tr *transform.Transformer, files []string, jobs int) []FileOutcome {
	outcomes := make([]FileOutcome, len(files))
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = transformOne(ctx, tr, file)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func transformOne(ctx context.Context, tr *transform.Transformer, file string) FileOutcome {
	if err := ctx.Err(); err != nil {
		return FileOutcome{Path: file, Err: err}
	}

	sourceCode, err := os.ReadFile(file)
	if err != nil {
		return FileOutcome{Path: file, Err: fmt.Errorf("failed to read %s: %w", file, err)}
	}

	result, err := tr.TransformFile(ctx, file, sourceCode)
	return FileOutcome{Path: file, Result: result, Err: err}
}

// Errors joins the errors of all failed outcomes.
func Errors(outcomes []FileOutcome) error {
	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return errors.Join(errs...)
}

// WarningReporter logs each distinct configuration warning once.
type WarningReporter struct {
	mu   sync.Mutex
	seen map[config.Warning]bool
}

func (r *WarningReporter) Report(outcomes []FileOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seen == nil {
		r.seen = make(map[config.Warning]bool)
	}
	for _, outcome := range outcomes {
		for _, w := range outcome.Result.Warnings {
			if r.seen[w] {
				continue
			}
			r.seen[w] = true
			logging.Warn(w.Message, map[string]any{"option": w.Option})
		}
	}
}
