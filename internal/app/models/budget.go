package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BudgetBreakdown is the six-category cost aggregate for a whole trip.
// Total is always derived from the leaf categories via Sum, never
// written independently, which keeps the breakdown additive by
// construction.
type BudgetBreakdown struct {
	Flights       int64 `json:"flights"`
	Accommodation int64 `json:"accommodation"`
	Food          int64 `json:"food"`
	Transport     int64 `json:"transport"`
	Activities    int64 `json:"activities"`
	Miscellaneous int64 `json:"miscellaneous"`
	Total         int64 `json:"total"`
}

// Sum returns the sum of the six leaf categories.
func (b BudgetBreakdown) Sum() int64 {
	return b.Flights + b.Accommodation + b.Food + b.Transport + b.Activities + b.Miscellaneous
}

// RecomputeTotal rewrites Total from the leaf categories. Call after any
// category mutation.
func (b *BudgetBreakdown) RecomputeTotal() {
	b.Total = b.Sum()
}

// PerTraveler returns the total share of a single traveler. Derived on
// demand so it can never drift from the category totals.
func (b BudgetBreakdown) PerTraveler(travelers int) int64 {
	if travelers < 1 {
		return b.Sum()
	}
	return b.Sum() / int64(travelers)
}

// PerDayPerTraveler returns the daily spend of a single traveler.
func (b BudgetBreakdown) PerDayPerTraveler(tripDays, travelers int) int64 {
	if tripDays < 1 {
		return b.PerTraveler(travelers)
	}
	return b.PerTraveler(travelers) / int64(tripDays)
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMinor renders an amount in minor currency units as a grouped
// decimal string, e.g. 1234567 -> "12,345.67".
func FormatMinor(amountMinor int64) string {
	return moneyPrinter.Sprintf("%.2f", float64(amountMinor)/100)
}
