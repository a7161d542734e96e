// Package cli implements the cljdoc-analyzer command line interface.
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cljdoc-analyzer",
	Short: "Extract documentation metadata from Clojure source trees",
	Long: `cljdoc-analyzer walks a directory of Clojure source files and extracts
structured documentation metadata: namespaces, their public definitions
(vars, macros, protocols, multimethods), and per-definition attributes,
in a JSON shape consumed by a documentation renderer.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
