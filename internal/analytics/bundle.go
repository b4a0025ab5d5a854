package analytics

import (
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// Bundle holds every aggregate view computed over one validated transaction
// set. Each view is recomputed from the same set; nothing is cached between
// calls.
type Bundle struct {
	TotalRevenue float64                `json:"totalRevenue"`
	Regions      []models.RegionStats   `json:"regions"`
	TopProducts  []models.ProductStats  `json:"topProducts"`
	LowProducts  []models.ProductStats  `json:"lowProducts"`
	Customers    []models.CustomerStats `json:"customers"`
	Daily        []models.DailyStats    `json:"daily"`
	Peak         *models.PeakDay        `json:"peak,omitempty"`
}

// Compute runs the full set of aggregations over a validated transaction set.
func Compute(txns []models.Transaction, topN, lowThreshold int) Bundle {
	b := Bundle{
		TotalRevenue: TotalRevenue(txns),
		Regions:      RegionSales(txns),
		TopProducts:  TopSellingProducts(txns, topN),
		LowProducts:  LowPerformingProducts(txns, lowThreshold),
		Customers:    CustomerAnalysis(txns),
		Daily:        DailySalesTrend(txns),
	}
	if peak, ok := PeakSalesDay(txns); ok {
		b.Peak = &peak
	}
	return b
}
