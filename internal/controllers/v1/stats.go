package v1

import (
	"net/http"
	"time"

	"github.com/centsible/backend/internal/aggregate"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/stats"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Defaults to a month of history when the days parameter is absent.
const defaultWindowDays = 30

// RegisterStatsRoutes registers the routes for statistics with
// the RouterGroup that is passed.
func RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overview", httputil.OptionsGet)
	r.GET("/overview", GetStatsOverview)
	r.OPTIONS("/balance-series", httputil.OptionsGet)
	r.GET("/balance-series", GetBalanceSeries)
	r.OPTIONS("/breakdown", httputil.OptionsGet)
	r.GET("/breakdown", GetExpenseBreakdown)
	r.OPTIONS("/top-categories", httputil.OptionsGet)
	r.GET("/top-categories", GetTopCategories)
}

// StatsOverview is the balance card: the total balance and the income and
// expenses of the last seven days.
type StatsOverview struct {
	Balance         decimal.Decimal `json:"balance"`
	WeeklyIncome    decimal.Decimal `json:"weeklyIncome"`
	WeeklyExpenses  decimal.Decimal `json:"weeklyExpenses"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
}

type StatsOverviewResponse struct {
	Error *string        `json:"error"` // The error, if any occurred
	Data  *StatsOverview `json:"data"`  // The overview
}

type BalanceSeriesResponse struct {
	Data  []stats.BalancePoint `json:"data"`  // One point per day, oldest first
	Error *string              `json:"error"` // The error, if any occurred
}

type BreakdownResponse struct {
	Data  []stats.BreakdownEntry `json:"data"`  // Per-category expense shares
	Error *string                `json:"error"` // The error, if any occurred
}

type TopCategoriesResponse struct {
	Data  []stats.CategoryAmount `json:"data"`  // Categories by spending, highest first
	Error *string                `json:"error"` // The error, if any occurred
}

type statsQuery struct {
	Days int `form:"days"`
}

// windowDays parses the days query parameter, falling back to the default
// window.
func windowDays(c *gin.Context) (int, error) {
	var query statsQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		return 0, err
	}

	if query.Days < 1 {
		return defaultWindowDays, nil
	}

	return query.Days, nil
}

// GetStatsOverview returns the total balance together with the weekly and
// monthly income and expense sums.
func GetStatsOverview(c *gin.Context) {
	transactions, _, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatsOverviewResponse{
			Error: &e,
		})
		return
	}

	now := time.Now()
	weekly := aggregate.WeeklyIncomeExpense(transactions, now)
	monthly := aggregate.MonthlyIncomeExpense(transactions, now)

	overview := StatsOverview{
		Balance:         aggregate.TotalBalance(transactions),
		WeeklyIncome:    weekly.Income,
		WeeklyExpenses:  weekly.Expenses,
		MonthlyIncome:   monthly.Income,
		MonthlyExpenses: monthly.Expenses,
	}
	c.JSON(http.StatusOK, StatsOverviewResponse{Data: &overview})
}

// GetBalanceSeries returns the running balance per day over the requested
// window, one point per day including days without any activity.
func GetBalanceSeries(c *gin.Context) {
	days, err := windowDays(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceSeriesResponse{
			Error: &e,
		})
		return
	}

	transactions, _, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceSeriesResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BalanceSeriesResponse{
		Data: stats.BalanceSeries(transactions, days, time.Now()),
	})
}

// GetExpenseBreakdown returns the per-category expense shares over the
// requested window.
func GetExpenseBreakdown(c *gin.Context) {
	days, err := windowDays(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BreakdownResponse{
			Error: &e,
		})
		return
	}

	transactions, _, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BreakdownResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{
		Data: stats.ExpenseBreakdown(transactions, days, time.Now()),
	})
}

// GetTopCategories returns the categories with the highest spending over
// the requested window.
func GetTopCategories(c *gin.Context) {
	days, err := windowDays(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TopCategoriesResponse{
			Error: &e,
		})
		return
	}

	transactions, _, err := models.AllTransactions()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TopCategoriesResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, TopCategoriesResponse{
		Data: stats.TopCategories(transactions, days, time.Now()),
	})
}
