package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

func strPtr(s string) *string   { return &s }
func fltPtr(f float64) *float64 { return &f }

func matched() models.EnrichedTransaction {
	return models.EnrichedTransaction{
		Transaction: models.Transaction{
			TransactionID: "T001",
			Date:          "2024-01-01",
			ProductID:     "P101",
			ProductName:   "Widget",
			Quantity:      10,
			UnitPrice:     5.0,
			CustomerID:    "C001",
			Region:        "North",
		},
		APICategory: strPtr("smartphones"),
		APIBrand:    strPtr("Acme"),
		APIRating:   fltPtr(4.5),
		APIMatch:    true,
	}
}

func unmatched() models.EnrichedTransaction {
	return models.EnrichedTransaction{
		Transaction: models.Transaction{
			TransactionID: "T002",
			Date:          "2024-01-02",
			ProductID:     "P999",
			ProductName:   "Gadget",
			Quantity:      3,
			UnitPrice:     20.5,
			CustomerID:    "C002",
			Region:        "South",
		},
	}
}

func TestWriteTo(t *testing.T) {
	var sb strings.Builder
	if err := WriteTo(&sb, []models.EnrichedTransaction{matched(), unmatched()}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	wantHeader := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"
	if lines[0] != wantHeader {
		t.Errorf("header:\n got %q\nwant %q", lines[0], wantHeader)
	}

	wantMatched := "T001|2024-01-01|P101|Widget|10|5.0|C001|North|smartphones|Acme|4.5|True"
	if lines[1] != wantMatched {
		t.Errorf("matched row:\n got %q\nwant %q", lines[1], wantMatched)
	}

	wantUnmatched := "T002|2024-01-02|P999|Gadget|3|20.5|C002|South|N/A|N/A|0.0|False"
	if lines[2] != wantUnmatched {
		t.Errorf("unmatched row:\n got %q\nwant %q", lines[2], wantUnmatched)
	}
}

func TestWriteToEmptyBrandRendersNA(t *testing.T) {
	record := matched()
	record.APIBrand = strPtr("")

	var sb strings.Builder
	if err := WriteTo(&sb, []models.EnrichedTransaction{record}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "|smartphones|N/A|4.5|True") {
		t.Errorf("empty brand should render as N/A:\n%s", sb.String())
	}
}

func TestWriteToEmptySet(t *testing.T) {
	var sb strings.Builder
	if err := WriteTo(&sb, nil); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match\n" {
		t.Errorf("empty set should still produce the header, got %q", sb.String())
	}
}

func TestWriteSnapshotCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "snapshot.txt")
	if err := WriteSnapshot(path, []models.EnrichedTransaction{matched()}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "TransactionID|") {
		t.Errorf("snapshot content: %q", content)
	}
}

func TestWriteSnapshotOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.txt")
	if err := WriteSnapshot(path, []models.EnrichedTransaction{matched(), unmatched()}); err != nil {
		t.Fatal(err)
	}
	if err := WriteSnapshot(path, []models.EnrichedTransaction{matched()}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "\n"); got != 2 {
		t.Errorf("second run must fully rewrite the file, got %d lines", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{5.0, "5.0"},
		{20.5, "20.5"},
		{0, "0.0"},
		{12.75, "12.75"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.input); got != tt.want {
			t.Errorf("formatFloat(%v): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
