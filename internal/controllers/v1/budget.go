package v1

import (
	"net/http"
	"time"

	"github.com/centsible/backend/internal/aggregate"
	"github.com/centsible/backend/internal/budgeting"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
		r.POST("", SetBudget)
	}

	// Derived monthly views
	{
		r.OPTIONS("/insight", httputil.OptionsGet)
		r.GET("/insight", GetBudgetInsight)
		r.OPTIONS("/overview", httputil.OptionsGet)
		r.GET("/overview", GetBudgetOverview)
	}
}

func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// SetBudget creates or replaces the monthly limit for a category.
func SetBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, err := models.SetBudget(editable.Category, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(budget, evaluateOne(budget))
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// GetBudgets returns all budgets with their spending status for the
// current month.
func GetBudgets(c *gin.Context) {
	budgets, transactions, err := budgetInputs()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	statuses := budgeting.Evaluate(budgets, transactions, time.Now())

	data := make([]Budget, 0, len(budgets))
	for i, budget := range budgets {
		data = append(data, newBudget(budget, statuses[i]))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// GetBudgetInsight returns a human readable summary of this month's budget
// situation.
func GetBudgetInsight(c *gin.Context) {
	budgets, transactions, err := budgetInputs()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetInsightResponse{
			Error: &e,
		})
		return
	}

	insight := budgeting.Insight(budgeting.Evaluate(budgets, transactions, time.Now()))
	c.JSON(http.StatusOK, BudgetInsightResponse{Data: &insight})
}

// GetBudgetOverview returns the monthly income and expenses, the remaining
// daily budget and how much of all budget limits is already used.
func GetBudgetOverview(c *gin.Context) {
	budgets, transactions, err := budgetInputs()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetOverviewResponse{
			Error: &e,
		})
		return
	}

	now := time.Now()
	monthly := aggregate.MonthlyIncomeExpense(transactions, now)

	spent := decimal.Zero
	limit := decimal.Zero
	for _, status := range budgeting.Evaluate(budgets, transactions, now) {
		spent = spent.Add(status.Spent)
		limit = limit.Add(status.Limit)
	}

	used := decimal.Zero
	if limit.IsPositive() {
		used = spent.Div(limit).Mul(decimal.NewFromInt(100))
	}

	overview := BudgetOverview{
		Income:         monthly.Income,
		Expenses:       monthly.Expenses,
		DailyRemaining: budgeting.DailyRemaining(monthly.Income, monthly.Expenses, now),
		BudgetUsed:     used,
	}
	c.JSON(http.StatusOK, BudgetOverviewResponse{Data: &overview})
}

// budgetInputs loads everything the monthly evaluations need.
func budgetInputs() ([]models.Budget, []models.Transaction, error) {
	budgets, err := models.Budgets()
	if err != nil {
		return nil, nil, err
	}

	transactions, _, err := models.AllTransactions()
	if err != nil {
		return nil, nil, err
	}

	return budgets, transactions, nil
}

// evaluateOne computes the status for a single budget.
func evaluateOne(budget models.Budget) budgeting.Status {
	transactions, _, err := models.AllTransactions()
	if err != nil {
		return budgeting.Status{Category: budget.Category, Limit: budget.Amount}
	}

	statuses := budgeting.Evaluate([]models.Budget{budget}, transactions, time.Now())
	return statuses[0]
}
