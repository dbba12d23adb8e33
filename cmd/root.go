// Package cmd defines and implements the CLI commands for the webgraph
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grrrrrrh/web-crawler-bd/internal/logging"
	"github.com/grrrrrrh/web-crawler-bd/pkg/config"
)

var (
	logLevel string
	jsonLog  bool

	// rootLogger is built once in the root command's PersistentPreRunE and
	// shared by all subcommands.
	rootLogger *zap.Logger
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webgraph",
		Short: "Crawl a single domain and report its internal link graph",
		Long: `webgraph crawls every page reachable within one domain from a seed
URL, subject to a concurrency cap and a page budget. It honors robots.txt
on a best-effort basis and produces a per-page CSV report and a Graphviz
DOT graph of internal links.`,
		SilenceUsage: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logLevel, !jsonLog)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rootLogger = logger
			config.InitConfig(rootLogger)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if rootLogger != nil {
				_ = rootLogger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit JSON logs instead of console output")

	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point. On error the process exits non-zero and
// produces no artifacts.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
