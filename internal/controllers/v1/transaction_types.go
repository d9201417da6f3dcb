package v1

import (
	"fmt"

	"github.com/centsible/backend/internal/filter"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/shopspring/decimal"
)

// TransactionEditable contains the fields clients can set on a transaction.
//
// The amount may be sent signed (negative = expense) or positive together
// with an explicit type. Internally amounts are always positive with the
// direction in the type field; this is the adapter for both client
// conventions.
type TransactionEditable struct {
	Name     string                 `json:"name" example:"Groceries at the corner store"`
	Amount   decimal.Decimal        `json:"amount" example:"-32.17"`
	Type     models.TransactionType `json:"type" example:"expense"`
	Category string                 `json:"category" example:"Groceries"`
	Date     types.CompactDate      `json:"date" example:"05/03/24"`
	Imported bool                   `json:"imported" default:"false"`
}

// model returns the database resource for the API representation, with the
// sign convention normalized.
func (editable TransactionEditable) model() models.Transaction {
	amount, transactionType := normalizeAmount(editable.Amount, editable.Type)

	return models.Transaction{
		Name:     editable.Name,
		Amount:   amount,
		Type:     transactionType,
		Category: editable.Category,
		Date:     editable.Date,
		Imported: editable.Imported,
	}
}

// normalizeAmount reconciles the two amount conventions: a negative amount
// always means an expense, a positive amount without an explicit type means
// income.
func normalizeAmount(amount decimal.Decimal, transactionType models.TransactionType) (decimal.Decimal, models.TransactionType) {
	if amount.IsNegative() {
		return amount.Neg(), models.Expense
	}

	if transactionType == "" {
		transactionType = models.Income
	}

	return amount, transactionType
}

type TransactionLinks struct {
	Self   string `json:"self" example:"/v1/transactions/438cc6c0-9baf-49fd-a75a-d76bd5cab19c"`
	Refund string `json:"refund" example:"/v1/transactions/438cc6c0-9baf-49fd-a75a-d76bd5cab19c/refund"`
}

type Transaction struct {
	models.Transaction
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API representation of the resource.
func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		Transaction: model,
		Links: TransactionLinks{
			Self:   fmt.Sprintf("/v1/transactions/%s", model.ID),
			Refund: fmt.Sprintf("/v1/transactions/%s/refund", model.ID),
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error"` // The error, if any occurred
	Data  *Transaction `json:"data"`  // The resource
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`  // List of resources
	Count int           `json:"count"` // Total number of stored transactions, before filtering
	Error *string       `json:"error"` // The error, if any occurred
}

type TransactionCreateResponse struct {
	Error *string               `json:"error"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`  // List of created resources
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionQueryFilter struct {
	Type       string   `form:"type"`     // "all", "income" or "outcome"
	Categories []string `form:"category"` // Repeatable; empty matches all categories
	From       string   `form:"fromDate"` // DD/MM/YY, inclusive
	Until      string   `form:"untilDate"` // DD/MM/YY, inclusive
	Search     string   `form:"search"`   // Glob pattern matched against the name
}

// criteria parses the query filter into filter criteria.
func (f TransactionQueryFilter) criteria() (filter.Criteria, error) {
	criteria := filter.Criteria{
		Type:       filter.TypeAll,
		Categories: f.Categories,
		Search:     f.Search,
	}

	switch f.Type {
	case "", string(filter.TypeAll):
	case string(filter.TypeIncome):
		criteria.Type = filter.TypeIncome
	case string(filter.TypeOutcome):
		criteria.Type = filter.TypeOutcome
	default:
		return filter.Criteria{}, errTransactionTypeFilterInvalid
	}

	if f.From != "" {
		from, err := types.ParseDate(f.From)
		if err != nil {
			return filter.Criteria{}, err
		}
		criteria.From = from
	}

	if f.Until != "" {
		until, err := types.ParseDate(f.Until)
		if err != nil {
			return filter.Criteria{}, err
		}
		criteria.Until = until
	}

	return criteria, nil
}
