package explain

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/LegacyCodeHQ/platformext/cmd/cmdutil"
	"github.com/LegacyCodeHQ/platformext/config"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/LegacyCodeHQ/platformext/resolver"
	"github.com/spf13/cobra"
)

type explainOptions struct {
	resolver cmdutil.ResolverFlags
}

// Cmd represents the explain command.
var Cmd = NewCommand()

// NewCommand returns a new explain command instance.
func NewCommand() *cobra.Command {
	opts := &explainOptions{}

	cmd := &cobra.Command{
		Use:   "explain <file> <specifier>",
		Short: "Show how an import specifier resolves from a file",
		Long: `Show the platform candidates probed for an import specifier, which of them
exist on disk, and the rewrite that would be applied.

Examples:
  platformext explain src/App.js ./styles.scss -e .scss
  platformext explain src/index.ts ./app --omit-ext .tsx,.ts`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, opts, args[0], args[1])
		},
	}

	opts.resolver.Register(cmd.Flags())
	return cmd
}

func runExplain(cmd *cobra.Command, opts *explainOptions, file, specifier string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	options, err := opts.resolver.Options(root)
	if err != nil {
		return err
	}

	cfg, warnings, err := config.Normalize(options, root)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logging.Warn(w.Message, map[string]any{"option": w.Option})
	}

	absFile, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fileCtx := resolver.NewFileContext(cfg, absFile, resolver.OSFS())
	res := fileCtx.Resolve(resolver.ImportRequest{Specifier: specifier})

	return printResolution(cmd.OutOrStdout(), fileCtx, specifier, res)
}

func printResolution(w io.Writer, fileCtx *resolver.FileContext, specifier string, res resolver.Resolution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "file:\t%s\n", fileCtx.FilePath())
	fmt.Fprintf(tw, "base dir:\t%s\n", fileCtx.Dir())
	fmt.Fprintf(tw, "specifier:\t%s\n", specifier)
	fmt.Fprintf(tw, "platforms:\t%s\n", strings.Join(fileCtx.Platforms(), ", "))
	if res.Fallback {
		fmt.Fprintf(tw, "search:\tomitted extension\n")
	}

	if len(res.Chain) > 0 {
		fmt.Fprintln(tw)
		for _, candidate := range res.Chain {
			state := "missing"
			if candidate.Exists {
				state = "exists"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", candidate.Platform, candidate.Path, state)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "decision:\t%s\n", describe(res))
	return tw.Flush()
}

func describe(res resolver.Resolution) string {
	rw := res.Rewrite
	switch rw.Kind {
	case resolver.RewriteDirect:
		return "replace with " + rw.Path
	case resolver.RewriteConditional:
		return fmt.Sprintf("Platform.OS === %q ? %s : %s", rw.Platform, rw.TruePath, rw.FalsePath)
	default:
		return "leave unchanged (" + res.Skip + ")"
	}
}
