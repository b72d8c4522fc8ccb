package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/platformext/cmd/explain"
	"github.com/LegacyCodeHQ/platformext/cmd/graph"
	"github.com/LegacyCodeHQ/platformext/cmd/rewrite"
	"github.com/LegacyCodeHQ/platformext/cmd/watch"
	"github.com/LegacyCodeHQ/platformext/internal/logging"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platformext",
		Short: "Resolve platform-specific import variants in React Native sources",
		Long: `platformext rewrites imports in JavaScript and TypeScript sources to the
platform-specific variant found next to them on disk (for example
./styles.ios.scss or ./theme.native.json). Variants only known at runtime
become a Platform.OS conditional.

Configuration is read from ` + "`.platformextrc`" + ` in the working directory, or
from the file passed with --config. Flags override the file.

Use 'platformext <command> --help' for detailed information about a command.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetVerbose(verbose)
		},
	}

	cmd.AddCommand(rewrite.Cmd)
	cmd.AddCommand(explain.Cmd)
	cmd.AddCommand(graph.Cmd)
	cmd.AddCommand(watch.Cmd)

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every resolved import")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
