// Package aggregate computes derived financial state from a transaction
// collection: the total balance, rolling weekly and calendar-month income and
// expense sums, and per-category totals.
//
// All functions are pure over their inputs. Refunded transactions never
// participate. A transaction without a usable date is skipped with a warning
// instead of failing the whole aggregation.
package aggregate

import (
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// IncomeExpense is a pair of income and expense sums. Both values are
// positive, the direction is carried by the field.
type IncomeExpense struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// TotalBalance returns the sum of all signed transaction amounts,
// independent of input order.
func TotalBalance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero

	for _, t := range transactions {
		if t.Refunded {
			continue
		}
		balance = balance.Add(t.Signed())
	}

	return balance
}

// WeeklyIncomeExpense sums income and expenses over the last seven days.
// The rolling window is start-inclusive and end-exclusive at day
// granularity, so today's transactions always count.
func WeeklyIncomeExpense(transactions []models.Transaction, now time.Time) IncomeExpense {
	start := types.DateOf(now).AddDays(-7)
	end := types.DateOf(now).AddDays(1)

	return sumWindow(transactions, func(date types.CompactDate) bool {
		return date.InWindow(start, end)
	})
}

// MonthlyIncomeExpense sums income and expenses over the calendar month of now.
func MonthlyIncomeExpense(transactions []models.Transaction, now time.Time) IncomeExpense {
	month := types.MonthOf(now)

	return sumWindow(transactions, func(date types.CompactDate) bool {
		return month.Contains(date)
	})
}

func sumWindow(transactions []models.Transaction, match func(types.CompactDate) bool) IncomeExpense {
	sums := IncomeExpense{Income: decimal.Zero, Expenses: decimal.Zero}

	for _, t := range transactions {
		if t.Refunded || skipUndated(t) {
			continue
		}

		if !match(t.Date) {
			continue
		}

		if t.Type == models.Income {
			sums.Income = sums.Income.Add(t.Amount)
		} else {
			sums.Expenses = sums.Expenses.Add(t.Amount)
		}
	}

	return sums
}

// CategoryTotals groups the absolute amounts of matching expense
// transactions by category. A nil predicate matches everything.
func CategoryTotals(transactions []models.Transaction, predicate func(models.Transaction) bool) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.Refunded || t.Type != models.Expense {
			continue
		}

		if predicate != nil && !predicate(t) {
			continue
		}

		total, ok := totals[t.Category]
		if !ok {
			total = decimal.Zero
		}
		totals[t.Category] = total.Add(t.Amount)
	}

	return totals
}

// skipUndated reports whether a transaction has no usable date. One bad
// record must not abort aggregation over the whole set, so it is logged
// and skipped.
func skipUndated(t models.Transaction) bool {
	if !t.Date.IsZero() {
		return false
	}

	log.Warn().
		Str("transaction", t.ID.String()).
		Str("name", t.Name).
		Msg("skipping transaction without a valid date")

	return true
}
