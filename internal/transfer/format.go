// Package transfer moves entry collections in and out of files: CSV and
// JSON export, JSON import, and the display formatting they share with the
// table views.
package transfer

import "strconv"

// NotAvailable marks a missing value in table views.
const NotAvailable = "N/A"

// Linear formats a weight or circumference with one decimal, or missing if absent.
func Linear(v *float64, missing string) string {
	return formatFixed(v, 1, missing)
}

// Derived formats a body-fat percentage or fat-free mass with two decimals,
// or missing if absent.
func Derived(v *float64, missing string) string {
	return formatFixed(v, 2, missing)
}

func formatFixed(v *float64, prec int, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
