package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// snapshotHeader names the columns of the flat snapshot. The first eight
// mirror the input feed; the API_ columns carry the catalog join.
const snapshotHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

// WriteSnapshot writes the enriched record set to path as a pipe-delimited
// snapshot, creating parent directories as needed. The file is fully
// rewritten on every run.
func WriteSnapshot(path string, records []models.EnrichedTransaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}

	if err := WriteTo(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo streams the snapshot to w. An empty record set still produces the
// header line.
func WriteTo(w io.Writer, records []models.EnrichedTransaction) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(snapshotHeader + "\n"); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	for _, record := range records {
		if _, err := bw.WriteString(formatRow(record) + "\n"); err != nil {
			return fmt.Errorf("writing snapshot row: %w", err)
		}
	}

	return bw.Flush()
}

func formatRow(r models.EnrichedTransaction) string {
	fields := []string{
		r.TransactionID,
		r.Date,
		r.ProductID,
		r.ProductName,
		strconv.Itoa(r.Quantity),
		formatFloat(r.UnitPrice),
		r.CustomerID,
		r.Region,
		formatOptional(r.APICategory),
		formatOptional(r.APIBrand),
		formatRating(r.APIRating),
		formatBool(r.APIMatch),
	}
	return strings.Join(fields, "|")
}

// formatOptional renders a catalog string field. Both an absent value and an
// empty string from the catalog render as N/A.
func formatOptional(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func formatRating(r *float64) string {
	if r == nil {
		return "0.0"
	}
	return formatFloat(*r)
}

// formatFloat renders with the shortest exact representation, keeping a
// trailing .0 on integral values so 5 prints as 5.0.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
