package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/centsible/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// thisMonth returns a date in the current month so the monthly evaluations
// pick the transaction up.
func thisMonth() types.CompactDate {
	return types.DateOf(time.Now())
}

func (suite *TestSuiteStandard) TestBudgetSet() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Category: "Food",
		Amount:   decimal.NewFromInt(200),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Food", response.Data.Category)
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(response.Data.Amount))
}

func (suite *TestSuiteStandard) TestBudgetSetReplaces() {
	for _, amount := range []int64{200, 120} {
		r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
			Category: "Food",
			Amount:   decimal.NewFromInt(amount),
		})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodGet, "/v1/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.True(suite.T(), decimal.NewFromInt(120).Equal(response.Data[0].Amount))
}

func (suite *TestSuiteStandard) TestBudgetSetInvalid() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Category: "Food",
		Amount:   decimal.Zero,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetStatuses() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Category: "Food",
		Amount:   decimal.NewFromInt(100),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	createTestTransaction(suite.T(), v1.TransactionEditable{
		Name: "Groceries", Amount: decimal.NewFromInt(80), Type: models.Expense, Category: "Food", Date: thisMonth(),
	})

	r = test.Request(suite.T(), http.MethodGet, "/v1/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	status := response.Data[0].Status
	assert.True(suite.T(), decimal.NewFromInt(80).Equal(status.Spent))
	assert.True(suite.T(), decimal.NewFromInt(80).Equal(status.Percentage))
	assert.False(suite.T(), status.OverBudget)
}

func (suite *TestSuiteStandard) TestBudgetInsight() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/budgets/insight", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetInsightResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "All budgets are on track this month.", *response.Data)
}

func (suite *TestSuiteStandard) TestBudgetInsightOverBudget() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Category: "Food",
		Amount:   decimal.NewFromInt(50),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	createTestTransaction(suite.T(), v1.TransactionEditable{
		Name: "Feast", Amount: decimal.NewFromInt(80), Type: models.Expense, Category: "Food", Date: thisMonth(),
	})

	r = test.Request(suite.T(), http.MethodGet, "/v1/budgets/insight", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetInsightResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Contains(suite.T(), *response.Data, "You are over budget in Food.")
}

func (suite *TestSuiteStandard) TestBudgetOverview() {
	createTestTransaction(suite.T(), v1.TransactionEditable{
		Name: "Salary", Amount: decimal.NewFromInt(3000), Type: models.Income, Date: thisMonth(),
	})
	createTestTransaction(suite.T(), v1.TransactionEditable{
		Name: "Rent", Amount: decimal.NewFromInt(1000), Type: models.Expense, Category: "Housing", Date: thisMonth(),
	})

	r := test.Request(suite.T(), http.MethodGet, "/v1/budgets/overview", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetOverviewResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), decimal.NewFromInt(3000).Equal(response.Data.Income))
	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(response.Data.Expenses))
}

func (suite *TestSuiteStandard) TestBudgetsDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "/v1/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
