// Package filter implements predicate-based transaction filtering.
package filter

import (
	"strings"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/ryanuber/go-glob"
)

// Type selects the transaction direction to keep.
type Type string

const (
	TypeAll     Type = "all"
	TypeIncome  Type = "income"
	TypeOutcome Type = "outcome"
)

// Criteria is a conjunctive transaction filter. Zero values mean "no
// restriction": an empty category list matches all categories, zero dates
// leave the range unbounded on that side.
type Criteria struct {
	Type       Type
	Categories []string
	From       types.CompactDate // Inclusive
	Until      types.CompactDate // Inclusive
	Search     string            // Glob pattern matched against the name, case-insensitive
}

// Apply returns the transactions matching the criteria. The filter is pure
// and order-preserving; applying it twice returns the same result as
// applying it once.
func Apply(transactions []models.Transaction, criteria Criteria) []models.Transaction {
	matched := make([]models.Transaction, 0, len(transactions))

	for _, t := range transactions {
		if matches(t, criteria) {
			matched = append(matched, t)
		}
	}

	return matched
}

func matches(t models.Transaction, criteria Criteria) bool {
	switch criteria.Type {
	case TypeIncome:
		if t.Type != models.Income {
			return false
		}
	case TypeOutcome:
		if t.Type != models.Expense {
			return false
		}
	}

	if len(criteria.Categories) > 0 && !containsFold(criteria.Categories, t.Category) {
		return false
	}

	if !criteria.From.IsZero() && t.Date.Before(criteria.From) {
		return false
	}

	if !criteria.Until.IsZero() && t.Date.After(criteria.Until) {
		return false
	}

	if criteria.Search != "" && !glob.Glob(strings.ToLower(criteria.Search), strings.ToLower(t.Name)) {
		return false
	}

	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
