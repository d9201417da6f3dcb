// Package budgeting evaluates category budgets against the current month's
// spending.
package budgeting

import (
	"fmt"
	"strings"
	"time"

	"github.com/centsible/backend/internal/aggregate"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Status is the evaluation result for a single category budget.
type Status struct {
	Category   string          `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      decimal.Decimal `json:"limit"`
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"overBudget"`
}

var oneHundred = decimal.NewFromInt(100)

// Evaluate computes spend-vs-limit for every budget over the calendar month
// of now. Categories without any spending evaluate to zero, never to an
// error.
func Evaluate(budgets []models.Budget, transactions []models.Transaction, now time.Time) []Status {
	month := types.MonthOf(now)

	spent := aggregate.CategoryTotals(transactions, func(t models.Transaction) bool {
		return !t.Date.IsZero() && month.Contains(t.Date)
	})

	statuses := make([]Status, 0, len(budgets))
	for _, budget := range budgets {
		status := Status{
			Category:   budget.Category,
			Spent:      decimal.Zero,
			Limit:      budget.Amount,
			Percentage: decimal.Zero,
		}

		if total, ok := spent[budget.Category]; ok {
			status.Spent = total
		}

		if budget.Amount.IsPositive() {
			status.Percentage = status.Spent.Div(budget.Amount).Mul(oneHundred)
		}

		status.OverBudget = status.Percentage.GreaterThan(oneHundred)
		statuses = append(statuses, status)
	}

	return statuses
}

// DailyRemaining returns how much can be spent per remaining day of the
// month. On the last day of the month there are no remaining days, so the
// result is zero rather than a division by zero.
func DailyRemaining(monthlyIncome, monthlyExpenses decimal.Decimal, now time.Time) decimal.Decimal {
	month := types.MonthOf(now)
	remainingDays := month.Days() - now.Day()
	if remainingDays < 1 {
		return decimal.Zero
	}

	return monthlyIncome.Sub(monthlyExpenses).Div(decimal.NewFromInt(int64(remainingDays)))
}

// Insight returns a deterministic message about the budget situation.
// Over-budget categories are listed in their encounter order.
func Insight(statuses []Status) string {
	var over []string
	for _, status := range statuses {
		if status.OverBudget {
			over = append(over, status.Category)
		}
	}

	if len(over) == 0 {
		return "All budgets are on track this month."
	}

	return fmt.Sprintf("You are over budget in %s. Consider cutting back there for the rest of the month.", strings.Join(over, ", "))
}
