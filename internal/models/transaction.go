package models

import (
	"fmt"
	"strings"

	"github.com/centsible/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
//
// The amount is always positive, the direction is carried by Type. Callers
// that work with signed amounts convert at the API boundary.
type Transaction struct {
	DefaultModel
	Name     string
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type     TransactionType
	Category string
	Date     types.CompactDate
	Refunded bool // Refunded transactions stay visible but never count towards aggregates
	Imported bool // Set for transactions merged from a bank import
}

// Signed returns the amount with the sign convention applied:
// positive for income, negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// BeforeSave trims string fields and validates amount and type.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)

	if t.Type != Income && t.Type != Expense {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = types.DateOf(timeNowUTC())
	}

	return nil
}

// AllTransactions returns all transactions ordered by date, newest first,
// together with the total count.
func AllTransactions() ([]Transaction, int, error) {
	var transactions []Transaction

	err := withRetry(func() error {
		return DB.Order("date desc, created_at desc").Find(&transactions).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("getting transactions failed: %w", err)
	}

	return transactions, len(transactions), nil
}

// UpdateTransactionFields updates a transaction with the given fields.
//
// The refunded field is rejected: refunding is monotonic and has its own
// dedicated operation, MarkRefunded.
func UpdateTransactionFields(id uuid.UUID, fields map[string]any) (Transaction, error) {
	for field := range fields {
		if strings.EqualFold(field, "refunded") {
			return Transaction{}, ErrProtectedField
		}
	}

	var transaction Transaction
	err := withRetry(func() error {
		return DB.First(&transaction, "id = ?", id).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	// gorm runs the BeforeSave hook against the loaded struct, not the
	// update map, so the patched values have to be validated here. The
	// patch is applied to a copy and run through the same checks a save
	// performs; the trimmed strings are written back so the stored values
	// match.
	patched := transaction
	for field, value := range fields {
		switch strings.ToLower(field) {
		case "name":
			patched.Name, _ = value.(string)
		case "category":
			patched.Category, _ = value.(string)
		case "date":
			patched.Date, _ = value.(types.CompactDate)
		case "type":
			switch v := value.(type) {
			case TransactionType:
				patched.Type = v
			case string:
				patched.Type = TransactionType(v)
			}
		case "amount":
			patched.Amount, _ = value.(decimal.Decimal)
		}
	}

	if err := patched.BeforeSave(nil); err != nil {
		return Transaction{}, err
	}

	for field := range fields {
		switch strings.ToLower(field) {
		case "name":
			fields[field] = patched.Name
		case "category":
			fields[field] = patched.Category
		}
	}

	err = withRetry(func() error {
		return DB.Model(&transaction).Updates(fields).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// MarkRefunded sets the refunded flag on a transaction. The flag is
// monotonic, there is no operation to clear it again.
func MarkRefunded(id uuid.UUID) (Transaction, error) {
	var transaction Transaction
	err := withRetry(func() error {
		return DB.First(&transaction, "id = ?", id).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	err = withRetry(func() error {
		return DB.Model(&transaction).Update("refunded", true).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}
