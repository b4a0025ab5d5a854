package models

// Transaction represents a single sales transaction from the pipe-delimited feed.
// Records are immutable once parsed; derived values are computed, not stored.
type Transaction struct {
	TransactionID string  `json:"transactionId"`
	Date          string  `json:"date"` // YYYY-MM-DD, lexicographically sortable
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
	CustomerID    string  `json:"customerId"`
	Region        string  `json:"region"`
}

// Amount returns the line amount (Quantity x UnitPrice) for this transaction.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction joined against the external product
// catalog. Enrichment is 1:1 with the input set; unmatched records carry nil
// catalog fields and APIMatch=false.
type EnrichedTransaction struct {
	Transaction

	APICategory *string  `json:"apiCategory"`
	APIBrand    *string  `json:"apiBrand"`
	APIRating   *float64 `json:"apiRating"`
	APIMatch    bool     `json:"apiMatch"`
}

// ValidationSummary reports the outcome of one validation/filter pass.
// It is recomputed per run and never persisted.
type ValidationSummary struct {
	TotalInput       int `json:"totalInput"`
	Invalid          int `json:"invalid"`
	FilteredByRegion int `json:"filteredByRegion"`
	FilteredByAmount int `json:"filteredByAmount"`
	FinalCount       int `json:"finalCount"`
}

// FilterOptions carries the optional filter parameters for a validation pass.
// A nil bound or empty region means that filter is not applied.
type FilterOptions struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// RegionStats aggregates sales for one region.
type RegionStats struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"totalSales"`
	TransactionCount int     `json:"transactionCount"`
	Percentage       float64 `json:"percentage"` // share of grand total revenue
}

// ProductStats aggregates quantity and revenue for one product name.
type ProductStats struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CustomerStats aggregates purchase behaviour for one customer.
// ProductsBought is backed by an unordered set; no ordering is guaranteed.
type CustomerStats struct {
	CustomerID     string   `json:"customerId"`
	TotalSpent     float64  `json:"totalSpent"`
	PurchaseCount  int      `json:"purchaseCount"`
	AvgOrderValue  float64  `json:"avgOrderValue"`
	ProductsBought []string `json:"productsBought"`
}

// DailyStats aggregates sales for one date.
type DailyStats struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transactionCount"`
	UniqueCustomers  int     `json:"uniqueCustomers"`
}

// PeakDay is the highest-revenue date in a transaction set.
type PeakDay struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transactionCount"`
}
