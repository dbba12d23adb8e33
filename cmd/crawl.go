package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/grrrrrrh/web-crawler-bd/internal/api"
	"github.com/grrrrrrh/web-crawler-bd/internal/crawler"
	"github.com/grrrrrrh/web-crawler-bd/internal/extract"
	"github.com/grrrrrrh/web-crawler-bd/internal/fetcher"
	"github.com/grrrrrrh/web-crawler-bd/internal/report"
)

// newCrawlCmd creates and configures the 'crawl' subcommand.
func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <seed-url>",
		Short: "Crawl a domain starting from the seed URL",
		Long: `Crawls all pages reachable within the seed URL's domain, then writes
the per-page CSV report and the internal link graph in Graphviz DOT format.
Interrupting the crawl aborts it without writing artifacts.`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCommand,
	}

	cmd.Flags().Int("max-concurrency", 5, "maximum number of pages fetched simultaneously")
	cmd.Flags().Int("max-pages", 100, "maximum number of pages to visit")
	cmd.Flags().Duration("timeout", 10*time.Second, "per-fetch request timeout")
	cmd.Flags().String("report", "report.csv", "path of the CSV page report")
	cmd.Flags().String("graph", "site.dot", "path of the DOT link graph")
	cmd.Flags().String("metrics-addr", "", "address to serve /metrics and /healthz on (disabled when empty)")

	bindings := map[string]string{
		"crawler.max_concurrency": "max-concurrency",
		"crawler.max_pages":       "max-pages",
		"crawler.request_timeout": "timeout",
		"report.csv_path":         "report",
		"report.dot_path":         "graph",
		"metrics.addr":            "metrics-addr",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	return cmd
}

func runCrawlCommand(cmd *cobra.Command, args []string) error {
	cfg := crawler.LoadConfig(viper.GetViper())
	cfg.SeedURL = args[0]
	if err := cfg.Validate(); err != nil {
		return err
	}

	collyFetcher, err := fetcher.NewCollyFetcher(fetcher.Config{
		UserAgent:      cfg.UserAgent,
		Concurrency:    cfg.MaxConcurrency,
		RequestTimeout: cfg.RequestTimeout,
	}, rootLogger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	if cfg.MetricsAddr != "" {
		metricsServer := api.NewServer(cfg.MetricsAddr, rootLogger)
		metricsServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := metricsServer.Shutdown(shutdownCtx); serr != nil {
				rootLogger.Warn("metrics server shutdown failed", zap.Error(serr))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := crawler.NewEngine(cfg, collyFetcher, extract.New(), nil, rootLogger)
	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run crawl: %w", err)
	}

	if err := report.WriteCSVFile(cfg.ReportPath, result.Pages); err != nil {
		return fmt.Errorf("write page report: %w", err)
	}
	if err := report.WriteDOTFile(cfg.GraphPath, result.Edges); err != nil {
		return fmt.Errorf("write link graph: %w", err)
	}

	rootLogger.Info("reports written",
		zap.String("report", cfg.ReportPath),
		zap.String("graph", cfg.GraphPath),
		zap.Int("pages", len(result.Pages)),
		zap.Int("edges", len(result.Edges)),
	)
	return nil
}
