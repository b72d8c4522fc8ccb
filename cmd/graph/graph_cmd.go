package graph

import (
	"fmt"
	"os"
	"strings"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/platformext/depgraph"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/resolver"
	"github.com/LegacyCodeHQ/platformext/transform"
	"github.com/spf13/cobra"
)

type graphOptions struct {
	resolver     cmdutil.ResolverFlags
	inputs       []string
	outputFormat string
	jobs         int
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{
		outputFormat: formatters.OutputFormatText.String(),
		jobs:         cmdutil.DefaultJobs(),
	}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show which platform variants each file would load",
		Long: `Show which platform variants each file would load after rewriting.

A direct rewrite contributes one edge; a conditional contributes an edge for
the runtime platform and one for its fallback.

Examples:
  platformext graph -i src -e .scss
  platformext graph -i src -f dot | dot -Tsvg > variants.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts)
		},
	}

	opts.resolver.Register(cmd.Flags())
	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", []string{"."}, "Files and/or directories to analyze (comma-separated)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format ("+strings.Join(formatters.Formats(), ", ")+")")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Number of files transformed concurrently")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
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

	g := depgraph.NewVariantGraph().RelativeTo(root)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			logging.Error("transform failed", map[string]any{"file": outcome.Path, "error": outcome.Err})
			continue
		}
		if err := g.AddResult(outcome.Result); err != nil {
			return fmt.Errorf("failed to add %s to graph: %w", outcome.Path, err)
		}
	}

	output, err := formatter.Format(g)
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), output)

	return cmdutil.Errors(outcomes)
}
