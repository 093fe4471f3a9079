package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newslens/internal/ai"
	"newslens/internal/config"
	"newslens/internal/searchad"
	"newslens/internal/storage"
	"newslens/internal/types"
)

// listCmd creates the "list" subcommand.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored report keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			keywords, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(keywords) == 0 {
				fmt.Println("No reports stored.")
				return nil
			}
			for _, kw := range keywords {
				fmt.Println(kw)
			}
			return nil
		},
	}
}

// showCmd creates the "show" subcommand.
func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [keyword]",
		Short: "Print a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stored, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stored)
			}

			if stored.Report != nil && stored.Report.IsError() {
				printErrorReport(stored)
				return nil
			}
			printStored(stored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw stored document")
	return cmd
}

// deleteCmd creates the "delete" subcommand.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [keyword]",
		Short: "Remove a stored report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted report for %q.\n", args[0])
			return nil
		},
	}
}

// volumeCmd creates the "volume" subcommand.
func volumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "volume [keyword]",
		Short: "Look up monthly search volume and blog-post totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := setupLogger(cfg.Logging)
			creds := config.LoadCredentials()

			client := searchad.NewClient(cfg.SearchAd, creds, logger)

			vol, err := client.KeywordStats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Keyword:        %s\n", vol.Keyword)
			fmt.Printf("Monthly search: %d (PC %d / mobile %d)\n", vol.Total, vol.PC, vol.Mobile)

			// Blog totals are a nice-to-have; a failure here should not
			// hide the search volume we already fetched.
			if total, err := client.BlogTotalCount(cmd.Context(), args[0]); err != nil {
				logger.Warn("blog total lookup failed", "error", err)
			} else {
				fmt.Printf("Blog posts:     %d\n", total)
			}
			return nil
		},
	}
}

func openStore() (storage.ReportStore, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := storage.Open(cfg.Storage, setupLogger(cfg.Logging))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return store, nil
}

// printStored renders the envelope summary and the per-day breakdown.
func printStored(stored *types.StoredReport) {
	fmt.Printf("\nKeyword:   %s\n", stored.Keyword)
	fmt.Printf("Period:    %s\n", stored.Period)
	fmt.Printf("Articles:  %d (긍정 %d / 부정 %d / 중립 %d)\n",
		len(stored.Articles),
		stored.SummaryStats.Positive, stored.SummaryStats.Negative, stored.SummaryStats.Neutral)
	fmt.Printf("Updated:   %s\n", stored.UpdatedAt)

	if stored.Report == nil {
		return
	}
	if stored.Report.IsError() {
		printErrorReport(stored)
		return
	}

	for _, day := range stored.Report.DailyTrends {
		fmt.Printf("\n%s — %v건", day.Date, day.Volume)
		if day.OneLineSummary != "" {
			fmt.Printf(": %s", day.OneLineSummary)
		}
		fmt.Println()
		for _, st := range day.SubTopics {
			fmt.Printf("  - %s: %v건 (%.1f%%)\n", st.Name, st.Count, st.Percent)
		}
	}
	if stored.Report.Conclusion != "" {
		fmt.Printf("\n%s\n", stored.Report.Conclusion)
	}
}

// printErrorReport renders an error-shaped report. A model_unavailable
// kind usually means the report was written by a model that no longer
// exists; refresh rebuilds it from the saved articles.
func printErrorReport(stored *types.StoredReport) {
	fmt.Printf("\nKeyword:  %s\n", stored.Keyword)
	fmt.Printf("Period:   %s\n", stored.Period)
	fmt.Printf("Report generation failed: %s\n", stored.Report.Error)

	if stored.Report.ErrorKind == string(ai.KindModelUnavailable) {
		fmt.Printf("\nThis report looks stale. Rebuild it with:\n  newslens refresh %q\n", stored.Keyword)
	}
	if stored.Report.RawText != "" {
		fmt.Printf("\nRaw model output (truncated):\n%s\n", stored.Report.RawText)
	}
}
