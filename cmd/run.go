package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/catalog"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/pipeline"
)

var (
	runInput     string
	runOutputDir string
	runRegion    string
	runMinAmount float64
	runMaxAmount float64
	runTop       int
	runThreshold int
	runNoEnrich  bool
	runXLSX      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analytics pipeline over a feed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runOutputDir != "" {
			cfg.OutputDir = runOutputDir
		}

		opts := pipeline.Options{
			InputFile:    runInput,
			Region:       runRegion,
			TopProducts:  runTop,
			LowThreshold: runThreshold,
			Enrich:       !runNoEnrich,
			XLSX:         runXLSX,
		}
		if cmd.Flags().Changed("min-amount") {
			opts.MinAmount = &runMinAmount
		}
		if cmd.Flags().Changed("max-amount") {
			opts.MaxAmount = &runMaxAmount
		}

		source := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Limit, cfg.CatalogTimeout(), log)
		p := pipeline.New(cfg, source, log)

		result, err := p.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s complete: %d/%d records analyzed, total revenue %.2f\n",
			result.RunID, result.Summary.FinalCount, result.Summary.TotalInput, result.Bundle.TotalRevenue)
		fmt.Printf("Snapshot: %s\n", result.SnapshotPath)
		fmt.Printf("Report:   %s\n", result.ReportPath)
		if result.WorkbookPath != "" {
			fmt.Printf("Workbook: %s\n", result.WorkbookPath)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "feed file to analyze (defaults to the configured input)")
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "directory for snapshot and report output")
	runCmd.Flags().StringVar(&runRegion, "region", "", "only analyze transactions from this region")
	runCmd.Flags().Float64Var(&runMinAmount, "min-amount", 0, "drop transactions below this amount")
	runCmd.Flags().Float64Var(&runMaxAmount, "max-amount", 0, "drop transactions above this amount")
	runCmd.Flags().IntVar(&runTop, "top", 0, "number of top selling products to report")
	runCmd.Flags().IntVar(&runThreshold, "threshold", 0, "quantity threshold for low performing products")
	runCmd.Flags().BoolVar(&runNoEnrich, "no-enrich", false, "skip the product catalog enrichment")
	runCmd.Flags().BoolVar(&runXLSX, "xlsx", false, "also export the report as an xlsx workbook")
	rootCmd.AddCommand(runCmd)
}
