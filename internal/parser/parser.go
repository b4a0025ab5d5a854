package parser

import (
	"strings"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
)

// fieldCount is the number of pipe-delimited fields in a feed record:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
const fieldCount = 8

// ParseLines converts raw feed lines into Transaction records.
//
// Lines that do not split into exactly 8 fields, or whose Quantity/UnitPrice
// fail numeric conversion, are silently dropped. Output order matches input
// order with dropped lines omitted; diagnostic counting is a caller concern.
func ParseLines(lines []string) []models.Transaction {
	txns := make([]models.Transaction, 0, len(lines))
	for _, line := range lines {
		txn, ok := ParseLine(line)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// ParseLine parses a single pipe-delimited record. The second return value is
// false when the line is malformed and should be skipped.
func ParseLine(line string) (models.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return models.Transaction{}, false
	}

	// Quantity and UnitPrice may carry thousands-separator commas
	// (e.g. "1,500" or "2,000.50").
	quantity, err := parseQuantity(parts[4])
	if err != nil {
		return models.Transaction{}, false
	}
	unitPrice, err := parsePrice(parts[5])
	if err != nil {
		return models.Transaction{}, false
	}

	return models.Transaction{
		TransactionID: strings.TrimSpace(parts[0]),
		Date:          strings.TrimSpace(parts[1]),
		ProductID:     strings.TrimSpace(parts[2]),
		ProductName:   cleanProductName(parts[3]),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(parts[6]),
		Region:        strings.TrimSpace(parts[7]),
	}, true
}
