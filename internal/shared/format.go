// Package shared holds small helpers used across modules.
package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders a rupee amount with Indian digit grouping, the way the
// KPI tiles display it.
func FormatAmount(v float64) string {
	return inr.Sprintf("₹%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// FormatPercent renders a ratio metric for display.
func FormatPercent(v float64) string {
	return inr.Sprintf("%v%%", number.Decimal(v,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1)))
}
