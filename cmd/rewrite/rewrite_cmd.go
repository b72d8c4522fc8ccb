package rewrite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/resolver"
	"github.com/LegacyCodeHQ/platformext/transform"
	"github.com/spf13/cobra"
)

type rewriteOptions struct {
	resolver cmdutil.ResolverFlags
	inputs   []string
	write    bool
	outDir   string
	jobs     int
}

// Cmd represents the rewrite command.
var Cmd = NewCommand()

// NewCommand returns a new rewrite command instance.
func NewCommand() *cobra.Command {
	opts := &rewriteOptions{
		jobs: cmdutil.DefaultJobs(),
	}

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite imports to their platform-specific variants",
		Long: `Rewrite imports to their platform-specific variants.

Every import whose specifier has a platform variant on disk (for example
./styles.ios.scss next to ./styles.scss) is rewritten. Variants that can only
be chosen at runtime (ios, android) become a Platform.OS conditional.

Examples:
  platformext rewrite -i src/App.js -e .scss       # print the rewritten file
  platformext rewrite -i src --write               # rewrite files in place
  platformext rewrite -i src --out build/native    # mirror rewritten files into a directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, opts)
		},
	}

	opts.resolver.Register(cmd.Flags())
	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", []string{"."}, "Files and/or directories to rewrite (comma-separated)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Write rewritten files under this directory instead of stdout")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Number of files transformed concurrently")

	return cmd
}

func runRewrite(cmd *cobra.Command, opts *rewriteOptions) error {
	if opts.write && opts.outDir != "" {
		return fmt.Errorf("--write cannot be used with --out")
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	options, err := opts.resolver.Options(root)
	if err != nil {
		return err
	}

	files, err := cmdutil.ExpandPaths(opts.inputs, cmdutil.IncludeRules(options, root))
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported files found in specified paths")
	}

	tr := transform.New(options, root, resolver.OSFS())
	outcomes := cmdutil.TransformFiles(cmd.Context(), tr, files, opts.jobs)

	var warnings cmdutil.WarningReporter
	warnings.Report(outcomes)

	rewrites := 0
	var emitErrs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logging.Error("transform failed", map[string]any{"file": outcome.Path, "error": outcome.Err})
			continue
		}
		rewrites += len(outcome.Result.Rewrites())

		if err := emit(cmd.OutOrStdout(), root, opts, outcome, len(outcomes) > 1); err != nil {
			logging.Error("output failed", map[string]any{"file": outcome.Path, "error": err})
			emitErrs = append(emitErrs, err)
		}
	}

	logging.Info("rewrite finished", map[string]any{"files": len(outcomes), "rewrites": rewrites})
	return errors.Join(cmdutil.Errors(outcomes), errors.Join(emitErrs...))
}

func emit(w io.Writer, root string, opts *rewriteOptions, outcome cmdutil.FileOutcome, multiple bool) error {
	result := outcome.Result

	switch {
	case opts.write:
		if !result.Changed {
			return nil
		}
		info, err := os.Stat(outcome.Path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", outcome.Path, err)
		}
		if err := os.WriteFile(outcome.Path, result.Source, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", outcome.Path, err)
		}
		return nil

	case opts.outDir != "":
		target, err := cmdutil.OutputPath(root, opts.outDir, outcome.Path)
		if err != nil {
			return err
		}
		return cmdutil.WriteFile(target, result.Source)

	default:
		if multiple {
			rel, err := filepath.Rel(root, result.Path)
			if err != nil {
				rel = result.Path
			}
			fmt.Fprintf(w, "// %s\n", rel)
		}
		_, err := w.Write(result.Source)
		return err
	}
}
