package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/centsible/backend/internal/filter"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var errTransactionTypeFilterInvalid = errors.New("the type filter must be one of 'all', 'income' or 'outcome'")

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
		r.POST("/:id/refund", RefundTransaction)
	}
}

func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{}, httputil.OptionsGetPatchDelete)
}

// CreateTransactions creates one or more new transactions.
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final response we return
	r := TransactionCreateResponse{}

	// The final status. Will be modified if any transaction fails
	currentStatus := http.StatusCreated

	for _, editable := range editables {
		transaction := editable.model()

		err = models.DB.Create(&transaction).Error
		if err != nil {
			currentStatus = r.appendError(err, currentStatus)
			continue
		}

		data := newTransaction(transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(currentStatus, r)
}

// GetTransactions returns the transactions matching the requested filter,
// together with the total number of stored transactions.
func GetTransactions(c *gin.Context) {
	var queryFilter TransactionQueryFilter
	if err := httputil.BindQuery(c, &queryFilter); err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	criteria, err := queryFilter.criteria()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	transactions, count, err := models.AllTransactions()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range filter.Apply(transactions, criteria) {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data:  data,
		Count: count,
	})
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// UpdateTransaction updates the fields of a transaction that are set in
// the request body. The refunded flag cannot be changed here, refunding
// has its own endpoint.
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{
			Error: &e,
		})
		return
	}

	fields, err := transactionPatchFields(body)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.UpdateTransactionFields(uri.ID.UUID, fields)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// transactionPatchFields parses a PATCH body into the column updates to
// perform. Only the fields present in the body are updated.
func transactionPatchFields(body []byte) (map[string]any, error) {
	var set map[string]json.RawMessage
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	}

	if len(set) == 0 {
		return nil, errors.New("request body must not be empty")
	}

	var editable TransactionEditable
	if err := json.Unmarshal(body, &editable); err != nil {
		return nil, errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	}

	fields := make(map[string]any, len(set))
	for field := range set {
		switch field {
		case "name":
			fields["name"] = editable.Name
		case "category":
			fields["category"] = editable.Category
		case "date":
			fields["date"] = editable.Date
		case "imported":
			fields["imported"] = editable.Imported
		case "type":
			fields["type"] = editable.Type
		case "amount":
			amount := editable.Amount
			if amount.IsNegative() {
				fields["amount"] = amount.Neg()
				fields["type"] = models.Expense
			} else {
				fields["amount"] = amount
			}
		case "refunded":
			// Passed through so the store rejects it as protected
			fields[field] = nil
		default:
			return nil, fmt.Errorf("the field %q does not exist on transactions", field)
		}
	}

	return fields, nil
}

// DeleteTransaction deletes a specific transaction.
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// RefundTransaction marks a transaction as refunded. Refunded transactions
// stay visible but no longer count towards any aggregate.
func RefundTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.MarkRefunded(uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}
