package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lread/cljdoc-analyzer/internal/config"
	"github.com/lread/cljdoc-analyzer/internal/output"
	"github.com/lread/cljdoc-analyzer/internal/reader"
)

var (
	outputFlag string
	quietFlag  bool
	watchFlag  bool
	ignoreFlag []string
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Extract namespace metadata from a source tree",
	Long: `Analyze walks the given directory (default: current directory),
analyzes every .clj and .cljc file, and writes the extracted namespace
metadata as JSON.

A file that fails analysis is reported and skipped; the remaining files
still contribute. Discovery and dependency-scan failures abort the run.

Examples:
  # Analyze the current directory, print JSON to stdout
  cljdoc-analyzer analyze

  # Analyze a project and write to a file
  cljdoc-analyzer analyze /path/to/project --output metadata.json

  # Re-analyze on every change
  cljdoc-analyzer analyze --watch --output metadata.json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file (\"-\" for stdout; overrides config)")
	analyzeCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars")
	analyzeCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for file changes and re-analyze")
	analyzeCmd.Flags().StringSliceVar(&ignoreFlag, "ignore", nil, "extra ignore glob patterns")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputFlag != "" {
		cfg.Output.File = outputFlag
	}
	cfg.Paths.Ignore = append(cfg.Paths.Ignore, ignoreFlag...)
	setLogLevel(cfg.Log.Level)

	// Progress bars would interleave with stdout output.
	quiet := quietFlag || cfg.Output.File == "-"
	writer := output.NewWriter(cfg.Output.File, cfg.Output.Pretty)

	runOnce := func() error {
		namespaces, err := reader.ReadNamespaces(root, reader.Options{
			Progress:       newProgressReporter(quiet),
			IgnorePatterns: cfg.Paths.Ignore,
		})
		if err != nil {
			return err
		}
		return writer.Write(namespaces)
	}

	if err := runOnce(); err != nil {
		return err
	}
	if !watchFlag {
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	watcher, err := reader.NewWatcher(root, func() {
		log.Info("change detected, re-analyzing", "root", root)
		if err := runOnce(); err != nil {
			log.Error("re-analysis failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()
	watcher.Start(ctx)

	log.Info("watching for changes", "root", root)
	<-ctx.Done()
	return nil
}

func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return root, nil
}

func setLogLevel(level string) {
	if verbose {
		return // --verbose wins
	}
	if parsed, err := log.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
}
