package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/analytics"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/catalog"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/config"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/enricher"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/feed"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/parser"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/report"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/validator"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/writer"
)

// ErrNoData means validation and filtering left nothing to analyze.
var ErrNoData = errors.New("no valid transactions after validation and filtering")

// ProductSource supplies the catalog products used for enrichment.
type ProductSource interface {
	FetchAll(ctx context.Context) []catalog.Product
}

// Options are the per-run knobs layered over the configuration.
type Options struct {
	InputFile string
	Region    string
	MinAmount *float64
	MaxAmount *float64

	// Zero values fall back to the configured analytics sizing.
	TopProducts  int
	LowThreshold int

	// Enrich toggles the catalog join; when false the snapshot is written
	// with every record unmatched. XLSX additionally exports a workbook.
	Enrich bool
	XLSX   bool
}

// Result summarizes one completed run.
type Result struct {
	RunID   string
	Summary models.ValidationSummary
	Bundle  analytics.Bundle

	EnrichedCount int
	MatchedCount  int

	SnapshotPath string
	ReportPath   string
	WorkbookPath string
}

// Pipeline wires the full feed-to-report flow together.
type Pipeline struct {
	cfg    config.Config
	source ProductSource
	log    zerolog.Logger
}

// New builds a pipeline over the given configuration and product source.
func New(cfg config.Config, source ProductSource, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, log: log}
}

// Run executes one end-to-end pass: read the feed, parse, validate and
// filter, compute analytics, join the catalog, and write the snapshot and
// report files. It fails only when nothing survives validation or an output
// file cannot be written; a missing feed or an unreachable catalog degrade
// instead of aborting.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	result := Result{RunID: runID}

	inputFile := opts.InputFile
	if inputFile == "" {
		inputFile = p.cfg.InputFile
	}

	lines := feed.NewReader(p.cfg.Encodings, log).Lines(inputFile)
	log.Info().Str("input", inputFile).Int("lines", len(lines)).Msg("feed loaded")

	txns := parser.ParseLines(lines)
	malformed := len(lines) - len(txns)
	if malformed > 0 {
		log.Warn().Int("malformed", malformed).Msg("dropped unparsable lines")
	}

	valid, summary := validator.Apply(txns, models.FilterOptions{
		Region:    opts.Region,
		MinAmount: opts.MinAmount,
		MaxAmount: opts.MaxAmount,
	})
	// Malformed lines count against the run the same way structurally
	// invalid records do.
	summary.TotalInput = len(lines)
	summary.Invalid += malformed
	result.Summary = summary

	log.Info().
		Int("total", summary.TotalInput).
		Int("invalid", summary.Invalid).
		Int("filtered_region", summary.FilteredByRegion).
		Int("filtered_amount", summary.FilteredByAmount).
		Int("final", summary.FinalCount).
		Msg("validation complete")

	if len(valid) == 0 {
		return result, ErrNoData
	}

	topN := opts.TopProducts
	if topN <= 0 {
		topN = p.cfg.Analytics.TopProducts
	}
	lowThreshold := opts.LowThreshold
	if lowThreshold <= 0 {
		lowThreshold = p.cfg.Analytics.LowThreshold
	}
	result.Bundle = analytics.Compute(valid, topN, lowThreshold)
	log.Info().Float64("total_revenue", result.Bundle.TotalRevenue).Msg("analytics computed")

	mapping := map[int]catalog.Product{}
	if opts.Enrich && p.source != nil {
		mapping = catalog.BuildMapping(p.source.FetchAll(ctx))
	}
	enriched := enricher.Enrich(valid, mapping)
	result.EnrichedCount = len(enriched)
	result.MatchedCount = enricher.MatchCount(enriched)
	log.Info().
		Int("records", result.EnrichedCount).
		Int("matched", result.MatchedCount).
		Msg("catalog enrichment complete")

	result.SnapshotPath = filepath.Join(p.cfg.OutputDir, p.cfg.SnapshotFile)
	if err := writer.WriteSnapshot(result.SnapshotPath, enriched); err != nil {
		return result, err
	}
	log.Info().Str("path", result.SnapshotPath).Msg("snapshot written")

	data := report.Data{
		RunID:         runID,
		GeneratedAt:   time.Now(),
		Summary:       summary,
		Bundle:        result.Bundle,
		EnrichedCount: result.EnrichedCount,
		MatchedCount:  result.MatchedCount,
	}

	result.ReportPath = filepath.Join(p.cfg.OutputDir, p.cfg.ReportFile)
	if err := report.WriteFile(result.ReportPath, data); err != nil {
		return result, err
	}
	log.Info().Str("path", result.ReportPath).Msg("report written")

	if opts.XLSX {
		result.WorkbookPath = workbookPath(result.ReportPath)
		if err := report.ExportXLSX(result.WorkbookPath, data); err != nil {
			return result, err
		}
		log.Info().Str("path", result.WorkbookPath).Msg("workbook written")
	}

	return result, nil
}

// workbookPath swaps the report extension for .xlsx.
func workbookPath(reportPath string) string {
	return strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + ".xlsx"
}
