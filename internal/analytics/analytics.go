package analytics

import (
	"math"
	"sort"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// All functions in this package are pure: they aggregate over the given
// validated transaction set without mutating it and hold no state between
// calls. Every grouped view is built from a fresh key->accumulator map with a
// first-encounter order slice, and sorted with sort.SliceStable so that ties
// keep encounter order.
//
// Rounding is half-to-even at two decimal places and happens only where a
// value is surfaced, never during accumulation.

// TotalRevenue sums the line amount over all records, rounded at the final
// return only.
func TotalRevenue(txns []models.Transaction) float64 {
	var total float64
	for _, txn := range txns {
		total += txn.Amount()
	}
	return round2(total)
}

// RegionSales groups transactions by region and reports each region's share
// of the grand total, ordered by total sales descending.
func RegionSales(txns []models.Transaction) []models.RegionStats {
	type acc struct {
		total float64
		count int
	}

	// Grand total is computed once, over the same record set, before rounding
	// touches the per-region values.
	var grandTotal float64
	for _, txn := range txns {
		grandTotal += txn.Amount()
	}

	groups := make(map[string]*acc)
	var order []string
	for _, txn := range txns {
		a, ok := groups[txn.Region]
		if !ok {
			a = &acc{}
			groups[txn.Region] = a
			order = append(order, txn.Region)
		}
		a.total += txn.Amount()
		a.count++
	}

	stats := make([]models.RegionStats, 0, len(order))
	for _, region := range order {
		a := groups[region]
		stats = append(stats, models.RegionStats{
			Region:           region,
			TotalSales:       round2(a.total),
			TransactionCount: a.count,
			Percentage:       round2(a.total / grandTotal * 100),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

// TopSellingProducts returns the first n products ranked by total quantity
// sold, descending. Revenue is reported but is not a tie-break; products with
// equal quantity keep encounter order.
func TopSellingProducts(txns []models.Transaction, n int) []models.ProductStats {
	stats := productTotals(txns)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns every product whose total quantity is
// strictly below threshold, sorted ascending by quantity. Unlike
// TopSellingProducts the result size is not capped.
func LowPerformingProducts(txns []models.Transaction, threshold int) []models.ProductStats {
	totals := productTotals(txns)
	low := make([]models.ProductStats, 0)
	for _, p := range totals {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

func productTotals(txns []models.Transaction) []models.ProductStats {
	type acc struct {
		qty     int
		revenue float64
	}

	groups := make(map[string]*acc)
	var order []string
	for _, txn := range txns {
		a, ok := groups[txn.ProductName]
		if !ok {
			a = &acc{}
			groups[txn.ProductName] = a
			order = append(order, txn.ProductName)
		}
		a.qty += txn.Quantity
		a.revenue += txn.Amount()
	}

	stats := make([]models.ProductStats, 0, len(order))
	for _, name := range order {
		a := groups[name]
		stats = append(stats, models.ProductStats{
			Name:     name,
			Quantity: a.qty,
			Revenue:  round2(a.revenue),
		})
	}
	return stats
}

// CustomerAnalysis groups transactions by customer, ordered by total spent
// descending. The distinct-products list carries no guaranteed order.
func CustomerAnalysis(txns []models.Transaction) []models.CustomerStats {
	type acc struct {
		spent    float64
		count    int
		products map[string]struct{}
	}

	groups := make(map[string]*acc)
	var order []string
	for _, txn := range txns {
		a, ok := groups[txn.CustomerID]
		if !ok {
			a = &acc{products: make(map[string]struct{})}
			groups[txn.CustomerID] = a
			order = append(order, txn.CustomerID)
		}
		a.spent += txn.Amount()
		a.count++
		a.products[txn.ProductName] = struct{}{}
	}

	stats := make([]models.CustomerStats, 0, len(order))
	for _, id := range order {
		a := groups[id]
		products := make([]string, 0, len(a.products))
		for name := range a.products {
			products = append(products, name)
		}
		// count is at least 1 for any grouped customer, so the average is
		// always defined.
		stats = append(stats, models.CustomerStats{
			CustomerID:     id,
			TotalSpent:     round2(a.spent),
			PurchaseCount:  a.count,
			AvgOrderValue:  round2(a.spent / float64(a.count)),
			ProductsBought: products,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})
	return stats
}

// DailySalesTrend groups transactions by date, ordered by ascending date.
// Plain string comparison is correct because dates are fixed-width
// YYYY-MM-DD.
func DailySalesTrend(txns []models.Transaction) []models.DailyStats {
	type acc struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}

	groups := make(map[string]*acc)
	var order []string
	for _, txn := range txns {
		a, ok := groups[txn.Date]
		if !ok {
			a = &acc{customers: make(map[string]struct{})}
			groups[txn.Date] = a
			order = append(order, txn.Date)
		}
		a.revenue += txn.Amount()
		a.count++
		a.customers[txn.CustomerID] = struct{}{}
	}

	sort.Strings(order)

	stats := make([]models.DailyStats, 0, len(order))
	for _, date := range order {
		a := groups[date]
		stats = append(stats, models.DailyStats{
			Date:             date,
			Revenue:          round2(a.revenue),
			TransactionCount: a.count,
			UniqueCustomers:  len(a.customers),
		})
	}
	return stats
}

// PeakSalesDay scans the daily trend in ascending-date order and returns the
// date with the highest revenue. Strict greater-than keeps the earliest date
// on ties. ok is false when the set has no dates.
func PeakSalesDay(txns []models.Transaction) (models.PeakDay, bool) {
	daily := DailySalesTrend(txns)
	if len(daily) == 0 {
		return models.PeakDay{}, false
	}

	peak := models.PeakDay{}
	maxRevenue := math.Inf(-1)
	for _, day := range daily {
		if day.Revenue > maxRevenue {
			maxRevenue = day.Revenue
			peak = models.PeakDay{
				Date:             day.Date,
				Revenue:          day.Revenue,
				TransactionCount: day.TransactionCount,
			}
		}
	}
	return peak, true
}

// round2 rounds to two decimal places using round-half-to-even.
func round2(f float64) float64 {
	return math.RoundToEven(f*100) / 100
}
