package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/franklinfx2/master-trader-sub000/config"
	"github.com/franklinfx2/master-trader-sub000/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal that mines your own trading rules",
	Long: `Tradejournal keeps a journal of your trades and mines it for behavioral rules.

It provides tools for:
  - Recording, importing and exporting journaled trades
  - Mining do-more, stop-doing, required-condition and no-trade rules
  - Rendering rule reports as org, markdown or JSON
  - Serving the journal and its rules over HTTP`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig reads --config when given, then applies the flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger logs to the command's stderr so stdout stays clean for reports.
func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(cfg.Log, cmd.ErrOrStderr())
}
