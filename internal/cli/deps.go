package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lread/cljdoc-analyzer/internal/config"
	"github.com/lread/cljdoc-analyzer/internal/deps"
	"github.com/lread/cljdoc-analyzer/internal/discover"
)

// depsCmd prints the foreign modules a source tree requires. Useful
// for checking what placeholder registrations an analysis will need.
var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "List externally-hosted modules required by a source tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(args)
		if err != nil {
			return err
		}
		cfg, err := config.Load(root)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		disc, err := discover.New(cfg.Paths.Ignore)
		if err != nil {
			return err
		}
		files, err := disc.Files(root)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		modules, err := deps.ScanForeignModules(root, files)
		if err != nil {
			return err
		}
		for _, name := range modules {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
