package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/analytics"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

func sampleData() Data {
	return Data{
		RunID:       "run-1234",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Summary: models.ValidationSummary{
			TotalInput:       10,
			Invalid:          2,
			FilteredByRegion: 1,
			FilteredByAmount: 1,
			FinalCount:       6,
		},
		Bundle: analytics.Bundle{
			TotalRevenue: 218.0,
			Regions: []models.RegionStats{
				{Region: "North", TotalSales: 110.0, TransactionCount: 3, Percentage: 50.46},
				{Region: "South", TotalSales: 80.0, TransactionCount: 2, Percentage: 36.7},
			},
			TopProducts: []models.ProductStats{
				{Name: "Widget", Quantity: 12, Revenue: 60.0},
			},
			LowProducts: []models.ProductStats{
				{Name: "Gadget", Quantity: 4, Revenue: 80.0},
			},
			Customers: []models.CustomerStats{
				{CustomerID: "C002", TotalSpent: 80.0, PurchaseCount: 2, AvgOrderValue: 40.0, ProductsBought: []string{"Gadget"}},
			},
			Daily: []models.DailyStats{
				{Date: "2024-01-01", Revenue: 110.0, TransactionCount: 2, UniqueCustomers: 2},
			},
			Peak: &models.PeakDay{Date: "2024-01-01", Revenue: 110.0, TransactionCount: 2},
		},
		EnrichedCount: 6,
		MatchedCount:  3,
	}
}

func TestRenderSections(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, sampleData()); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"SALES ANALYTICS REPORT",
		"run-1234",
		"Records read:        10",
		"Invalid records:     2",
		"Records analyzed:    6",
		"Total revenue: 218.00",
		"North",
		"1. Widget",
		"Gadget",
		"C002",
		"2024-01-01",
		"Peak Sales Day",
		"Catalog matches:  3 (50.00%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNoPeakDay(t *testing.T) {
	data := sampleData()
	data.Bundle.Peak = nil

	var sb strings.Builder
	if err := Render(&sb, data); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), "Peak Sales Day") {
		t.Error("peak section should be omitted when there is no peak day")
	}
}

func TestMatchRate(t *testing.T) {
	if got := (Data{EnrichedCount: 4, MatchedCount: 1}).MatchRate(); got != 25.0 {
		t.Errorf("match rate: got %f, want 25.0", got)
	}
	if got := (Data{}).MatchRate(); got != 0 {
		t.Errorf("empty match rate: got %f, want 0", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "sales_report.txt")
	if err := WriteFile(path, sampleData()); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "SALES ANALYTICS REPORT") {
		t.Errorf("report content: %q", content)
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_report.xlsx")
	if err := ExportXLSX(path, sampleData()); err != nil {
		t.Fatal(err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	for _, sheet := range []string{"Summary", "Regions", "Products", "Customers", "Daily"} {
		if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	if got, err := wb.GetCellValue("Regions", "A2"); err != nil || got != "North" {
		t.Errorf("Regions!A2: got %q, err %v", got, err)
	}
	if got, err := wb.GetCellValue("Summary", "B1"); err != nil || got != "run-1234" {
		t.Errorf("Summary!B1: got %q, err %v", got, err)
	}
}
