package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/budgeting"
	"github.com/centsible/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetEditable contains the fields clients can set on a budget.
type BudgetEditable struct {
	Category string          `json:"category" example:"Groceries"`
	Amount   decimal.Decimal `json:"amount" example:"200"`
}

type BudgetLinks struct {
	Self string `json:"self" example:"/v1/budgets/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
}

type Budget struct {
	models.Budget
	Status budgeting.Status `json:"status"` // Spending against the limit for the current month
	Links  BudgetLinks      `json:"links"`
}

// newBudget returns the API representation of the resource.
func newBudget(model models.Budget, status budgeting.Status) Budget {
	return Budget{
		Budget: model,
		Status: status,
		Links: BudgetLinks{
			Self: fmt.Sprintf("/v1/budgets/%s", model.ID),
		},
	}
}

type BudgetResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Budget `json:"data"`  // The resource
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`  // List of resources
	Error *string  `json:"error"` // The error, if any occurred
}

type BudgetInsightResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *string `json:"data"`  // A human readable summary of this month's budget situation
}

// BudgetOverview summarizes the current month for the overview screen.
type BudgetOverview struct {
	Income         decimal.Decimal `json:"income"`         // Income in the current month
	Expenses       decimal.Decimal `json:"expenses"`       // Expenses in the current month
	DailyRemaining decimal.Decimal `json:"dailyRemaining"` // What can be spent per day for the rest of the month
	BudgetUsed     decimal.Decimal `json:"budgetUsed"`     // Spending against all budget limits, in percent
}

type BudgetOverviewResponse struct {
	Error *string         `json:"error"` // The error, if any occurred
	Data  *BudgetOverview `json:"data"`  // The overview
}
