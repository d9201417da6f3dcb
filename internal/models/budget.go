package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending limit for a single category.
type Budget struct {
	DefaultModel
	Category string          `gorm:"uniqueIndex"`
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The monthly limit
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// SetBudget creates or replaces the budget for a category.
// Re-setting a category replaces its limit.
func SetBudget(category string, amount decimal.Decimal) (Budget, error) {
	var budget Budget

	err := withRetry(func() error {
		return DB.
			Where(Budget{Category: strings.TrimSpace(category)}).
			Assign(map[string]any{"amount": amount}).
			FirstOrCreate(&budget).Error
	})
	if err != nil {
		return Budget{}, fmt.Errorf("setting budget for category %q failed: %w", category, err)
	}

	budget.Amount = amount
	return budget, nil
}

// Budgets returns all budgets in their creation order.
func Budgets() ([]Budget, error) {
	var budgets []Budget

	err := withRetry(func() error {
		return DB.Order("created_at asc").Find(&budgets).Error
	})
	if err != nil {
		return nil, fmt.Errorf("getting budgets failed: %w", err)
	}

	return budgets, nil
}
