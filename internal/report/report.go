package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/analytics"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// Data carries everything one rendered report needs.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Summary     models.ValidationSummary
	Bundle      analytics.Bundle

	// Enrichment outcome; EnrichedCount is the record count that went
	// through the catalog join, MatchedCount how many of those matched.
	EnrichedCount int
	MatchedCount  int
}

// MatchRate returns the catalog match percentage, 0 when nothing was
// enriched.
func (d Data) MatchRate() float64 {
	if d.EnrichedCount == 0 {
		return 0
	}
	return float64(d.MatchedCount) / float64(d.EnrichedCount) * 100
}

// WriteFile renders the report to path, creating parent directories as
// needed.
func WriteFile(path string, data Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}

	if err := Render(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes the human-readable sales report to w.
func Render(w io.Writer, data Data) error {
	bw := bufio.NewWriter(w)

	section(bw, "SALES ANALYTICS REPORT")
	fmt.Fprintf(bw, "Run:       %s\n", data.RunID)
	fmt.Fprintf(bw, "Generated: %s\n\n", data.GeneratedAt.Format(time.RFC3339))

	section(bw, "Data Quality")
	s := data.Summary
	fmt.Fprintf(bw, "Records read:        %d\n", s.TotalInput)
	fmt.Fprintf(bw, "Invalid records:     %d\n", s.Invalid)
	fmt.Fprintf(bw, "Filtered by region:  %d\n", s.FilteredByRegion)
	fmt.Fprintf(bw, "Filtered by amount:  %d\n", s.FilteredByAmount)
	fmt.Fprintf(bw, "Records analyzed:    %d\n\n", s.FinalCount)

	section(bw, "Revenue")
	fmt.Fprintf(bw, "Total revenue: %.2f\n\n", data.Bundle.TotalRevenue)

	section(bw, "Sales by Region")
	for _, r := range data.Bundle.Regions {
		fmt.Fprintf(bw, "%-12s %12.2f  (%5.2f%%, %d transactions)\n",
			r.Region, r.TotalSales, r.Percentage, r.TransactionCount)
	}
	fmt.Fprintln(bw)

	section(bw, "Top Selling Products")
	for i, p := range data.Bundle.TopProducts {
		fmt.Fprintf(bw, "%d. %-24s qty %-6d revenue %.2f\n", i+1, p.Name, p.Quantity, p.Revenue)
	}
	fmt.Fprintln(bw)

	section(bw, "Low Performing Products")
	if len(data.Bundle.LowProducts) == 0 {
		fmt.Fprintln(bw, "None.")
	}
	for _, p := range data.Bundle.LowProducts {
		fmt.Fprintf(bw, "%-24s qty %-6d revenue %.2f\n", p.Name, p.Quantity, p.Revenue)
	}
	fmt.Fprintln(bw)

	section(bw, "Customers")
	for _, c := range data.Bundle.Customers {
		fmt.Fprintf(bw, "%-8s spent %10.2f over %d purchases (avg %.2f, %d distinct products)\n",
			c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue, len(c.ProductsBought))
	}
	fmt.Fprintln(bw)

	section(bw, "Daily Sales Trend")
	for _, d := range data.Bundle.Daily {
		fmt.Fprintf(bw, "%s  revenue %10.2f  transactions %-4d unique customers %d\n",
			d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers)
	}
	fmt.Fprintln(bw)

	if peak := data.Bundle.Peak; peak != nil {
		section(bw, "Peak Sales Day")
		fmt.Fprintf(bw, "%s with revenue %.2f over %d transactions\n\n",
			peak.Date, peak.Revenue, peak.TransactionCount)
	}

	section(bw, "Catalog Enrichment")
	fmt.Fprintf(bw, "Enriched records: %d\n", data.EnrichedCount)
	fmt.Fprintf(bw, "Catalog matches:  %d (%.2f%%)\n", data.MatchedCount, data.MatchRate())

	return bw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}
