package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/franklinfx2/master-trader-sub000/journal"
	"github.com/franklinfx2/master-trader-sub000/pkg/id"
	"github.com/franklinfx2/master-trader-sub000/trade"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query and edit trade journal data",
	Long: `Query, record and move trade journal records.

Subcommands:
  trade  - Get details of a specific trade by ID
  today  - List trades executed today
  day    - List trades executed on a specific day
  add    - Record a single trade
  delete - Remove a trade
  import - Record trades from a CSV file
  export - Write the journal as CSV

Examples:
  tradejournal journal trade <trade-id>
  tradejournal journal today
  tradejournal journal day 2024-01-15
  tradejournal journal add --outcome win --r 2 --session London
  tradejournal journal import trades.csv`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades executed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades executed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a single trade",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Remove a trade from the journal",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Record trades from a CSV file",
	Long: `Read trades from a CSV file with a header row and record them.

Trades already in the journal are skipped. Rows without a trade_id get a
generated one.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalImport,
}

var journalExportCmd = &cobra.Command{
	Use:   "export [file.csv]",
	Short: "Write every journaled trade as CSV (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalExport,
}

var addFlags struct {
	id            string
	instrument    string
	outcome       string
	r             float64
	at            string
	session       string
	setup         string
	htfBias       string
	rulesFollowed bool
	grade         string
	direction     string
	confidence    int
	risk          float64
	notes         string
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalExportCmd)

	f := journalAddCmd.Flags()
	f.StringVar(&addFlags.id, "id", "", "trade id (generated when empty)")
	f.StringVar(&addFlags.instrument, "instrument", "", "instrument, e.g. EUR_USD")
	f.StringVar(&addFlags.outcome, "outcome", "", "win, loss, breakeven or open (required)")
	f.Float64Var(&addFlags.r, "r", 0, "realized R multiple")
	f.StringVar(&addFlags.at, "at", "", "execution time, RFC3339 or \"2006-01-02 15:04\" local (default now)")
	f.StringVar(&addFlags.session, "session", "", "trading session")
	f.StringVar(&addFlags.setup, "setup", "", "setup type")
	f.StringVar(&addFlags.htfBias, "htf-bias", "", "higher-timeframe bias")
	f.BoolVar(&addFlags.rulesFollowed, "rules-followed", false, "whether the plan was followed")
	f.StringVar(&addFlags.grade, "grade", "", "letter grade")
	f.StringVar(&addFlags.direction, "direction", "", "long or short")
	f.IntVar(&addFlags.confidence, "confidence", 0, "confidence score")
	f.Float64Var(&addFlags.risk, "risk", 0, "risk percent of account")
	f.StringVar(&addFlags.notes, "notes", "", "free-text notes")
	journalAddCmd.MarkFlagRequired("outcome")
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(j journal.Store) error {
		rec, err := j.GetTrade(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get trade: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
		return nil
	})
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	return listDay(cmd, loc, time.Now().In(loc).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Local, args[0])
}

func listDay(cmd *cobra.Command, loc *time.Location, day string) error {
	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	return withStore(cmd, func(j journal.Store) error {
		recs, err := j.ListTradesBetween(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("query trades: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
		return nil
	})
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	rec, err := addRecord(cmd)
	if err != nil {
		return err
	}

	return withStore(cmd, func(j journal.Store) error {
		if err := j.RecordTrade(cmd.Context(), rec); err != nil {
			return fmt.Errorf("record trade: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", rec.TradeID)
		return nil
	})
}

// addRecord builds a trade from the add flags. Optional fields are only set
// when their flag was given.
func addRecord(cmd *cobra.Command) (trade.Record, error) {
	outcome, err := trade.ParseOutcome(addFlags.outcome)
	if err != nil {
		return trade.Record{}, err
	}

	at := time.Now()
	if addFlags.at != "" {
		if at, err = parseWhen(addFlags.at); err != nil {
			return trade.Record{}, err
		}
	}

	rec := trade.Record{
		TradeID:    strings.TrimSpace(addFlags.id),
		Instrument: addFlags.instrument,
		Outcome:    outcome,
		ExecutedAt: at,
		Session:    addFlags.session,
		SetupType:  addFlags.setup,
		HTFBias:    addFlags.htfBias,
		Grade:      addFlags.grade,
		Direction:  addFlags.direction,
		Notes:      addFlags.notes,
	}
	if rec.TradeID == "" {
		rec.TradeID = id.NewAt(at)
	}

	flags := cmd.Flags()
	if flags.Changed("r") {
		rec.RMultiple = trade.Float(addFlags.r)
	}
	if flags.Changed("rules-followed") {
		rec.RulesFollowed = trade.Bool(addFlags.rulesFollowed)
	}
	if flags.Changed("confidence") {
		rec.Confidence = trade.Int(addFlags.confidence)
	}
	if flags.Changed("risk") {
		rec.RiskPct = trade.Float(addFlags.risk)
	}
	return rec, nil
}

func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: want RFC3339 or \"2006-01-02 15:04\"", s)
	}
	return t, nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(j journal.Store) error {
		if err := j.DeleteTrade(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete trade: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	})
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	recs, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	return withStore(cmd, func(j journal.Store) error {
		var imported, skipped int
		for _, rec := range recs {
			err := j.RecordTrade(cmd.Context(), rec)
			switch {
			case errors.Is(err, journal.ErrDuplicateTrade):
				skipped++
			case err != nil:
				return fmt.Errorf("record trade %s: %w", rec.TradeID, err)
			default:
				imported++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d trades, skipped %d already journaled\n", imported, skipped)
		return nil
	})
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(j journal.Store) error {
		recs, err := j.ListTrades(cmd.Context())
		if err != nil {
			return fmt.Errorf("query trades: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create csv: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := journal.WriteCSV(w, recs); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	})
}

// withStore opens the configured journal for the length of fn.
func withStore(cmd *cobra.Command, fn func(journal.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	j, err := openStore(cmd.Context(), cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()
	return fn(j)
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
