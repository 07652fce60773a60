package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/franklinfx2/master-trader-sub000/report"
	"github.com/franklinfx2/master-trader-sub000/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Mine trading rules from the journal",
	Long: `Mine the journal for behavioral rules and print the report.

Rules are grouped into four buckets:
  do more             - conditions that beat your baseline
  required conditions - conditions strong enough to insist on
  stop doing          - conditions that lose money against your baseline
  never trade         - conditions that lose badly on their own

Examples:
  tradejournal rules
  tradejournal rules --recent 100
  tradejournal rules --format markdown`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

var (
	rulesRecent int
	rulesFormat string
)

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().IntVarP(&rulesRecent, "recent", "n", 0, "mine only the newest N trades (default from config, 0 = all)")
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "org", "output format: org, markdown or json")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	recent := cfg.Mining.RecentTrades
	if cmd.Flags().Changed("recent") {
		if rulesRecent < 0 {
			return fmt.Errorf("--recent must not be negative")
		}
		recent = rulesRecent
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg.Journal)
	if err != nil {
		return err
	}
	defer store.Close()

	cache, closeCache, err := newCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	trades, err := store.ListRecentTrades(ctx, recent)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	rep, err := cache.Mine(ctx, trades)
	if err != nil {
		return err
	}

	out, err := renderReport(rep, rulesFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderReport(rep rules.Report, format string) (string, error) {
	switch format {
	case "org":
		return report.Org(rep)
	case "markdown", "md":
		return report.Markdown(rep), nil
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode report: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown format %q (want org, markdown or json)", format)
}
