package models_test

import (
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionSigned() {
	income := models.Transaction{Amount: decimal.NewFromInt(100), Type: models.Income}
	expense := models.Transaction{Amount: decimal.NewFromInt(40), Type: models.Expense}

	assert.True(suite.T(), decimal.NewFromInt(100).Equal(income.Signed()))
	assert.True(suite.T(), decimal.NewFromInt(-40).Equal(expense.Signed()))
}

func (suite *TestSuiteStandard) TestTransactionBeforeSave() {
	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{
			"valid",
			models.Transaction{Amount: decimal.NewFromInt(10), Type: models.Expense},
			nil,
		},
		{
			"zero amount",
			models.Transaction{Amount: decimal.Zero, Type: models.Income},
			models.ErrAmountNotPositive,
		},
		{
			"negative amount",
			models.Transaction{Amount: decimal.NewFromInt(-10), Type: models.Expense},
			models.ErrAmountNotPositive,
		},
		{
			"invalid type",
			models.Transaction{Amount: decimal.NewFromInt(10), Type: "transfer"},
			models.ErrTransactionTypeInvalid,
		},
		{
			"empty type",
			models.Transaction{Amount: decimal.NewFromInt(10)},
			models.ErrTransactionTypeInvalid,
		},
	}

	for _, tt := range tests {
		err := tt.transaction.BeforeSave(models.DB)
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Name:     "  Groceries \t",
		Category: " Food ",
		Amount:   decimal.NewFromInt(10),
		Type:     models.Expense,
	})

	assert.Equal(suite.T(), "Groceries", transaction.Name)
	assert.Equal(suite.T(), "Food", transaction.Category)
}

func (suite *TestSuiteStandard) TestTransactionDefaultDate() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	assert.False(suite.T(), transaction.Date.IsZero(), "a transaction without a date defaults to today")
}

func (suite *TestSuiteStandard) TestAllTransactionsOrder() {
	suite.createTestTransaction(models.Transaction{
		Name: "older", Amount: decimal.NewFromInt(1), Type: models.Expense, Date: types.NewDate(2025, 6, 1),
	})
	suite.createTestTransaction(models.Transaction{
		Name: "newest", Amount: decimal.NewFromInt(1), Type: models.Expense, Date: types.NewDate(2025, 6, 10),
	})
	suite.createTestTransaction(models.Transaction{
		Name: "middle", Amount: decimal.NewFromInt(1), Type: models.Expense, Date: types.NewDate(2025, 6, 5),
	})

	transactions, count, err := models.AllTransactions()

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
	require.Len(suite.T(), transactions, 3)
	assert.Equal(suite.T(), "newest", transactions[0].Name)
	assert.Equal(suite.T(), "middle", transactions[1].Name)
	assert.Equal(suite.T(), "older", transactions[2].Name)
}

func (suite *TestSuiteStandard) TestUpdateTransactionFields() {
	transaction := suite.createTestTransaction(models.Transaction{
		Name:   "Lunch",
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
		Date:   types.NewDate(2025, 6, 1),
	})

	updated, err := models.UpdateTransactionFields(transaction.ID, map[string]any{
		"name":   "Dinner",
		"amount": decimal.NewFromInt(25),
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Dinner", updated.Name)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(updated.Amount))
}

func (suite *TestSuiteStandard) TestUpdateTransactionFieldsValidates() {
	transaction := suite.createTestTransaction(models.Transaction{
		Name:   "Lunch",
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
		Date:   types.NewDate(2025, 6, 1),
	})

	tests := []struct {
		name   string
		fields map[string]any
		err    error
	}{
		{"invalid type", map[string]any{"type": models.TransactionType("banana")}, models.ErrTransactionTypeInvalid},
		{"invalid type as string", map[string]any{"type": "transfer"}, models.ErrTransactionTypeInvalid},
		{"zero amount", map[string]any{"amount": decimal.Zero}, models.ErrAmountNotPositive},
		{"negative amount", map[string]any{"amount": decimal.NewFromInt(-5)}, models.ErrAmountNotPositive},
	}

	for _, tt := range tests {
		_, err := models.UpdateTransactionFields(transaction.ID, tt.fields)
		assert.ErrorIs(suite.T(), err, tt.err, tt.name)
	}

	// The record is untouched after the rejected updates
	var reloaded models.Transaction
	require.NoError(suite.T(), models.DB.First(&reloaded, "id = ?", transaction.ID).Error)
	assert.Equal(suite.T(), models.Expense, reloaded.Type)
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(reloaded.Amount))
}

func (suite *TestSuiteStandard) TestUpdateTransactionFieldsTrims() {
	transaction := suite.createTestTransaction(models.Transaction{
		Name:   "Lunch",
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	_, err := models.UpdateTransactionFields(transaction.ID, map[string]any{
		"name":     "  Dinner \t",
		"category": " Food ",
	})
	require.NoError(suite.T(), err)

	var reloaded models.Transaction
	require.NoError(suite.T(), models.DB.First(&reloaded, "id = ?", transaction.ID).Error)
	assert.Equal(suite.T(), "Dinner", reloaded.Name)
	assert.Equal(suite.T(), "Food", reloaded.Category)
}

func (suite *TestSuiteStandard) TestUpdateTransactionFieldsRefundedProtected() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	_, err := models.UpdateTransactionFields(transaction.ID, map[string]any{
		"Refunded": true,
	})

	assert.ErrorIs(suite.T(), err, models.ErrProtectedField)
}

func (suite *TestSuiteStandard) TestUpdateTransactionFieldsNotFound() {
	_, err := models.UpdateTransactionFields(uuid.New(), map[string]any{"name": "x"})

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMarkRefunded() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	refunded, err := models.MarkRefunded(transaction.ID)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), refunded.Refunded)
}

func (suite *TestSuiteStandard) TestTransactionsGeneralError() {
	suite.CloseDB()

	_, _, err := models.AllTransactions()

	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
