package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the report data as a multi-sheet workbook, one sheet per
// analytics view.
func ExportXLSX(path string, data Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating workbook directory: %w", err)
		}
	}

	wb := excelize.NewFile()
	defer wb.Close()

	if err := writeSummarySheet(wb, data); err != nil {
		return err
	}
	if err := writeRegionSheet(wb, data); err != nil {
		return err
	}
	if err := writeProductSheet(wb, data); err != nil {
		return err
	}
	if err := writeCustomerSheet(wb, data); err != nil {
		return err
	}
	if err := writeDailySheet(wb, data); err != nil {
		return err
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(wb *excelize.File, data Data) error {
	const sheet = "Summary"
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run", data.RunID},
		{"Records read", data.Summary.TotalInput},
		{"Invalid records", data.Summary.Invalid},
		{"Filtered by region", data.Summary.FilteredByRegion},
		{"Filtered by amount", data.Summary.FilteredByAmount},
		{"Records analyzed", data.Summary.FinalCount},
		{"Total revenue", data.Bundle.TotalRevenue},
		{"Enriched records", data.EnrichedCount},
		{"Catalog matches", data.MatchedCount},
	}
	if peak := data.Bundle.Peak; peak != nil {
		rows = append(rows, []interface{}{"Peak sales day", peak.Date})
	}
	return writeRows(wb, sheet, nil, rows)
}

func writeRegionSheet(wb *excelize.File, data Data) error {
	const sheet = "Regions"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating region sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(data.Bundle.Regions))
	for _, r := range data.Bundle.Regions {
		rows = append(rows, []interface{}{r.Region, r.TotalSales, r.TransactionCount, r.Percentage})
	}
	return writeRows(wb, sheet,
		[]interface{}{"Region", "Total Sales", "Transactions", "Percentage"}, rows)
}

func writeProductSheet(wb *excelize.File, data Data) error {
	const sheet = "Products"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating product sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(data.Bundle.TopProducts)+len(data.Bundle.LowProducts))
	for _, p := range data.Bundle.TopProducts {
		rows = append(rows, []interface{}{"top", p.Name, p.Quantity, p.Revenue})
	}
	for _, p := range data.Bundle.LowProducts {
		rows = append(rows, []interface{}{"low", p.Name, p.Quantity, p.Revenue})
	}
	return writeRows(wb, sheet,
		[]interface{}{"Tier", "Product", "Quantity", "Revenue"}, rows)
}

func writeCustomerSheet(wb *excelize.File, data Data) error {
	const sheet = "Customers"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating customer sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(data.Bundle.Customers))
	for _, c := range data.Bundle.Customers {
		rows = append(rows, []interface{}{
			c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue, len(c.ProductsBought),
		})
	}
	return writeRows(wb, sheet,
		[]interface{}{"Customer", "Total Spent", "Purchases", "Avg Order", "Distinct Products"}, rows)
}

func writeDailySheet(wb *excelize.File, data Data) error {
	const sheet = "Daily"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating daily sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(data.Bundle.Daily))
	for _, d := range data.Bundle.Daily {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers})
	}
	return writeRows(wb, sheet,
		[]interface{}{"Date", "Revenue", "Transactions", "Unique Customers"}, rows)
}

// writeRows fills a sheet row by row, with an optional header row first.
func writeRows(wb *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	row := 1
	if header != nil {
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &header); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
		row++
	}
	for i := range rows {
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &rows[i]); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i, err)
		}
		row++
	}
	return nil
}
