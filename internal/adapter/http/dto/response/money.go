package response

import "github.com/shopspring/decimal"

// CentsToDisplay renders minor units as a fixed two-decimal string, e.g. 539000 -> "5390.00".
// Amounts are never converted through floating point.
func CentsToDisplay(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
