package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	resolver  cmdutil.ResolverFlags
	inputs    []string
	outDir    string
	jobs      int
	cacheSize int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		jobs:      cmdutil.DefaultJobs(),
		cacheSize: defaultCacheSize,
	}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite files into an output directory whenever sources change",
		Long: `Watch the input directories and keep an output directory of rewritten files
up to date. Adding or removing a platform variant, editing a source file, or
changing the config file triggers a rebuild.

Examples:
  platformext watch -i src --out build/native`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	opts.resolver.Register(cmd.Flags())
	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", []string{"."}, "Files and/or directories to watch (comma-separated)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory that receives rewritten files (required)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Number of files transformed concurrently")
	cmd.Flags().IntVar(&opts.cacheSize, "cache-size", opts.cacheSize, "Number of output digests remembered to skip unchanged writes")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	outDir, err := filepath.Abs(opts.outDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	r, err := newRewriter(root, outDir, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if _, err := r.rebuild(ctx); err != nil {
		logging.Error("initial rewrite failed", map[string]any{"error": err})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", root)
	fmt.Fprintf(cmd.OutOrStdout(), "Writing to %s\n", outDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRewrite(ctx, r)
}

func rebuildLogged(ctx context.Context, r *rewriter) {
	if _, err := r.rebuild(ctx); err != nil {
		logging.Error("rewrite failed", map[string]any{"error": err})
	}
}
