package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/config"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/logger"
)

var (
	cfgPath string
	verbose bool

	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sales-analytics",
	Short: "Sales transaction analytics pipeline",
	Long: `Reads pipe-delimited sales transaction feeds, validates and filters
the records, computes revenue and customer analytics, enriches them
against a product catalog, and writes a flat snapshot plus a report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log = logger.New(level)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
