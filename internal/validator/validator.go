package validator

import (
	"strings"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// Apply validates parsed transactions and applies the optional filters.
//
// Validation runs unconditionally: records whose TransactionID/ProductID/
// CustomerID lack the T/P/C prefix, or whose Quantity or UnitPrice is not
// positive, are counted as invalid and never reach the filter phase.
//
// Filters run in a fixed order — region, then minimum amount, then maximum
// amount — and a record is counted under exactly one filtered_by bucket: the
// first check it fails. Bounds are inclusive. Surviving records keep their
// original relative order.
func Apply(txns []models.Transaction, opts models.FilterOptions) ([]models.Transaction, models.ValidationSummary) {
	valid := make([]models.Transaction, 0, len(txns))
	summary := models.ValidationSummary{TotalInput: len(txns)}

	for _, txn := range txns {
		if !isStructurallyValid(txn) {
			summary.Invalid++
			continue
		}

		if opts.Region != "" && txn.Region != opts.Region {
			summary.FilteredByRegion++
			continue
		}

		amount := txn.Amount()
		if opts.MinAmount != nil && amount < *opts.MinAmount {
			summary.FilteredByAmount++
			continue
		}
		if opts.MaxAmount != nil && amount > *opts.MaxAmount {
			summary.FilteredByAmount++
			continue
		}

		valid = append(valid, txn)
	}

	summary.FinalCount = len(valid)
	return valid, summary
}

func isStructurallyValid(txn models.Transaction) bool {
	if !strings.HasPrefix(txn.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(txn.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(txn.CustomerID, "C") {
		return false
	}
	if txn.Quantity <= 0 {
		return false
	}
	if txn.UnitPrice <= 0 {
		return false
	}
	return true
}

// Regions returns the distinct regions present in a transaction set, in
// first-encountered order. Used to present filter options to callers.
func Regions(txns []models.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, txn := range txns {
		if txn.Region == "" || seen[txn.Region] {
			continue
		}
		seen[txn.Region] = true
		regions = append(regions, txn.Region)
	}
	return regions
}
