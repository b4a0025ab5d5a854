package enricher

import (
	"strconv"
	"strings"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/catalog"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// Enrich joins validated transactions against the catalog mapping.
//
// Enrichment is strictly 1:1: every input record yields exactly one output
// record, in the same order, and the input is never mutated. A transaction
// whose ProductID has no parsable numeric suffix, or whose id is absent from
// the mapping, comes back with nil catalog fields and APIMatch=false. An
// empty mapping therefore means everything is unmatched, not an error.
func Enrich(txns []models.Transaction, mapping map[int]catalog.Product) []models.EnrichedTransaction {
	enriched := make([]models.EnrichedTransaction, 0, len(txns))

	for _, txn := range txns {
		record := models.EnrichedTransaction{Transaction: txn}

		if id, ok := ExtractProductID(txn.ProductID); ok {
			if product, found := mapping[id]; found {
				category := product.Category
				brand := product.Brand
				rating := product.Rating
				record.APICategory = &category
				record.APIBrand = &brand
				record.APIRating = &rating
				record.APIMatch = true
			}
		}

		enriched = append(enriched, record)
	}

	return enriched
}

// ExtractProductID parses the numeric id out of a prefixed product id:
// "P101" -> 101. The remainder after the single leading P must be purely
// numeric; anything else reports ok=false.
func ExtractProductID(productID string) (int, bool) {
	rest, found := strings.CutPrefix(productID, "P")
	if !found || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

// MatchCount reports how many enriched records matched the catalog.
func MatchCount(enriched []models.EnrichedTransaction) int {
	count := 0
	for _, record := range enriched {
		if record.APIMatch {
			count++
		}
	}
	return count
}
