// Package stats builds time-series and distribution projections for the
// statistics views: the balance curve over a selected window, the expense
// breakdown per category, and the top spending categories.
package stats

import (
	"sort"
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/shopspring/decimal"
)

// BalancePoint is the balance at the end of one calendar day.
type BalancePoint struct {
	Date    types.CompactDate `json:"date"`
	Balance decimal.Decimal   `json:"balance"`
}

// BreakdownEntry is one category's share of the window's expenses.
type BreakdownEntry struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"` // Rounded to one decimal place
}

// CategoryAmount is a category with its absolute expense total.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

var oneHundred = decimal.NewFromInt(100)

// BalanceSeries computes the running balance for each calendar day of the
// window, one point per day. The series is seeded with the balance of
// everything before the window start, and days without activity repeat the
// previous balance.
func BalanceSeries(transactions []models.Transaction, windowDays int, now time.Time) []BalancePoint {
	today := types.DateOf(now)
	start := today.AddDays(-windowDays)

	// Balance immediately before the window
	running := decimal.Zero
	for _, t := range transactions {
		if t.Refunded || t.Date.IsZero() {
			continue
		}
		if t.Date.Before(start) {
			running = running.Add(t.Signed())
		}
	}

	var series []BalancePoint
	for day := start; !day.After(today); day = day.AddDays(1) {
		for _, t := range transactions {
			if t.Refunded || !t.Date.Equal(day) {
				continue
			}
			running = running.Add(t.Signed())
		}

		series = append(series, BalancePoint{Date: day, Balance: running})
	}

	return series
}

// ExpenseBreakdown returns the per-category expense distribution of the
// window, in first-encounter order. Percentages are rounded to one decimal
// place of the category's share of the window total.
func ExpenseBreakdown(transactions []models.Transaction, windowDays int, now time.Time) []BreakdownEntry {
	categories, totals, windowTotal := windowExpenses(transactions, windowDays, now)
	if !windowTotal.IsPositive() {
		return []BreakdownEntry{}
	}

	entries := make([]BreakdownEntry, 0, len(categories))
	for _, category := range categories {
		amount := totals[category]
		entries = append(entries, BreakdownEntry{
			Category:   category,
			Amount:     amount,
			Percentage: amount.Div(windowTotal).Mul(oneHundred).Round(1),
		})
	}

	return entries
}

// TopCategories returns the window's expense categories sorted by amount,
// descending. Ties keep their first-encounter order.
func TopCategories(transactions []models.Transaction, windowDays int, now time.Time) []CategoryAmount {
	categories, totals, _ := windowExpenses(transactions, windowDays, now)

	ranked := make([]CategoryAmount, 0, len(categories))
	for _, category := range categories {
		ranked = append(ranked, CategoryAmount{Category: category, Amount: totals[category]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	return ranked
}

// windowExpenses sums the non-refunded expenses of the window per category,
// remembering the order in which categories were first seen.
func windowExpenses(transactions []models.Transaction, windowDays int, now time.Time) ([]string, map[string]decimal.Decimal, decimal.Decimal) {
	start := types.DateOf(now).AddDays(-windowDays)
	end := types.DateOf(now).AddDays(1)

	var categories []string
	totals := make(map[string]decimal.Decimal)
	windowTotal := decimal.Zero

	for _, t := range transactions {
		if t.Refunded || t.Type != models.Expense || t.Date.IsZero() {
			continue
		}
		if !t.Date.InWindow(start, end) {
			continue
		}

		total, ok := totals[t.Category]
		if !ok {
			total = decimal.Zero
			categories = append(categories, t.Category)
		}
		totals[t.Category] = total.Add(t.Amount)
		windowTotal = windowTotal.Add(t.Amount)
	}

	return categories, totals, windowTotal
}
