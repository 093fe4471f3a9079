package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newslens/internal/ai"
	"newslens/internal/analysis"
	"newslens/internal/collect"
	"newslens/internal/config"
	"newslens/internal/profile"
	"newslens/internal/storage"
)

var (
	cfgFile   string
	verbose   bool
	startDate string
	endDate   string
	headless  bool
	asJSON    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newslens",
		Short: "NewsLens — Naver news keyword analyzer",
		Long: `NewsLens collects Naver news search results for a keyword, classifies
each headline's sentiment, and generates a structured period report.

Commands:
  analyze   collect articles for a date range and build a report
  refresh   regenerate a stored report from its saved articles
  list      list stored report keywords
  show      print a stored report
  delete    remove a stored report
  volume    look up monthly search volume and blog-post totals`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(volumeCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// analyzeCmd creates the "analyze" subcommand.
func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [keyword]",
		Short: "Collect and analyze news for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	today := time.Now().Format("2006-01-02")
	weekAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	cmd.Flags().StringVarP(&startDate, "start", "s", weekAgo, "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVarP(&endDate, "end", "e", today, "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.Logging)
	applyCLIOverrides(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.ValidateDateRange(startDate, endDate); err != nil {
		return err
	}
	creds := config.LoadCredentials()

	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	pipe := newPipeline(cfg, creds, store, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting analysis",
		"keyword", keyword, "start", startDate, "end", endDate)
	begun := time.Now()

	stored, err := pipe.Run(ctx, keyword, startDate, endDate)
	if err != nil {
		return err
	}

	fmt.Printf("Analysis complete in %s\n", time.Since(begun).Round(time.Second))
	printStored(stored)
	return nil
}

// refreshCmd creates the "refresh" subcommand. It rebuilds the report
// from the articles already on disk, without touching the browser.
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [keyword]",
		Short: "Regenerate a stored report from its saved articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := setupLogger(cfg.Logging)
			creds := config.LoadCredentials()

			store, err := storage.Open(cfg.Storage, logger)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stored, err := newPipeline(cfg, creds, store, logger).Refresh(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Report regenerated.")
			printStored(stored)
			return nil
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("NewsLens %s\n", config.Version)
		},
	}
}

// newPipeline assembles the run-time collaborators.
func newPipeline(cfg *config.Config, creds config.Credentials, store storage.ReportStore, logger *slog.Logger) *analysis.Pipeline {
	collector := collect.New(cfg, profile.DefaultTable(), logger)
	llm := ai.NewClient(cfg.LLM, creds.LLMAPIKey, logger)
	batcher := ai.NewSentimentBatcher(llm, cfg.LLM, logger)
	generator := ai.NewReportGenerator(llm, logger)
	return analysis.New(collector, batcher, generator, store, logger)
}

// applyCLIOverrides applies flag values onto the loaded config. Only
// flags the user actually passed override the file; defaults never
// clobber a configured value.
func applyCLIOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = headless
	}
}

// setupLogger creates a structured logger from the logging section.
// The --verbose flag overrides the configured level.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	out := os.Stderr
	if cfg.Output == "stdout" {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}
