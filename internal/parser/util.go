package parser

import (
	"strconv"
	"strings"
)

// parseQuantity converts a string like "1,500" to an int.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	return strconv.Atoi(s)
}

// parsePrice converts a string like "2,000.50" to a float64.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	return strconv.ParseFloat(s, 64)
}

// cleanProductName normalises a product name field. Commas in this field are
// visual separators, never delimiters, so they become spaces.
func cleanProductName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ",", " "))
}
