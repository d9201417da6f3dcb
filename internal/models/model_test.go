package models_test

import (
	"time"

	"github.com/centsible/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBeforeCreateMintsID() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	assert.NotEqual(suite.T(), uuid.Nil, transaction.ID)
}

func (suite *TestSuiteStandard) TestBeforeCreateKeepsID() {
	id := uuid.New()

	transaction := models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	}
	transaction.ID = id

	created := suite.createTestTransaction(transaction)

	assert.Equal(suite.T(), id, created.ID)
}

func (suite *TestSuiteStandard) TestTimestampsUTC() {
	transaction := suite.createTestTransaction(models.Transaction{
		Amount: decimal.NewFromInt(10),
		Type:   models.Expense,
	})

	var loaded models.Transaction
	err := models.DB.First(&loaded, "id = ?", transaction.ID).Error

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, loaded.CreatedAt.Location())
	assert.Equal(suite.T(), time.UTC, loaded.UpdatedAt.Location())
}
