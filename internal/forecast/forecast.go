// Package forecast enriches the transaction data with a short-horizon
// balance prediction from an external oracle.
//
// The oracle call is expensive, so results are cached in a single slot: a
// cached forecast is reused while it is younger than 24 hours and the
// transaction count has not drifted by more than three records. The forecast
// is best-effort enrichment — an unreachable or misbehaving oracle yields a
// neutral fallback, never an error.
package forecast

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/centsible/backend/internal/aggregate"
	"github.com/centsible/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheExpiration = 24 * time.Hour
	maxCountDrift   = 3
	oracleTimeout   = 10 * time.Second
	recentLimit     = 20
)

// Forecast is the predicted balance change for the next period.
type Forecast struct {
	PredictedChange decimal.Decimal `json:"predictedChange"`
	Explanation     string          `json:"explanation"`
}

// Summary is the bounded context handed to the oracle: the current balance,
// the weekly sums, and the most recent transactions.
type Summary struct {
	Balance        decimal.Decimal
	WeeklyIncome   decimal.Decimal
	WeeklyExpenses decimal.Decimal
	Recent         []models.Transaction
}

// Oracle is the external prediction service.
type Oracle interface {
	Predict(ctx context.Context, summary Summary) (Forecast, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, summary Summary) (Forecast, error)

func (f OracleFunc) Predict(ctx context.Context, summary Summary) (Forecast, error) {
	return f(ctx, summary)
}

type cacheEntry struct {
	forecast         Forecast
	storedAt         time.Time
	transactionCount int
}

// Service wraps an oracle with the cache policy.
type Service struct {
	oracle Oracle

	mu     sync.Mutex
	cached *cacheEntry

	// now is replaceable for tests
	now func() time.Time
}

// NewService returns a forecast service around the given oracle.
func NewService(oracle Oracle) *Service {
	return &Service{
		oracle: oracle,
		now:    time.Now,
	}
}

// Get returns a forecast for the transaction set, from cache when possible.
// It never returns an error: oracle failures degrade to a neutral forecast
// with the reason as explanation, and are not cached.
func (s *Service) Get(ctx context.Context, transactions []models.Transaction) Forecast {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if s.cached != nil {
		age := now.Sub(s.cached.storedAt)
		drift := s.cached.transactionCount - len(transactions)
		if drift < 0 {
			drift = -drift
		}

		if age < cacheExpiration && drift <= maxCountDrift {
			log.Debug().Msg("using cached forecast")
			return s.cached.forecast
		}
	}

	if s.oracle == nil {
		return Forecast{PredictedChange: decimal.Zero, Explanation: "Forecast unavailable"}
	}

	ctx, cancel := context.WithTimeout(ctx, oracleTimeout)
	defer cancel()

	result, err := s.oracle.Predict(ctx, summarize(transactions))
	if err != nil {
		log.Warn().Err(err).Msg("forecast oracle unavailable, using fallback")
		return Forecast{PredictedChange: decimal.Zero, Explanation: "Forecast unavailable"}
	}

	s.cached = &cacheEntry{
		forecast:         result,
		storedAt:         now,
		transactionCount: len(transactions),
	}

	return result
}

// summarize builds the bounded oracle input: current balance, weekly sums
// and the most recent transactions.
func summarize(transactions []models.Transaction) Summary {
	weekly := aggregate.WeeklyIncomeExpense(transactions, time.Now())

	recent := make([]models.Transaction, len(transactions))
	copy(recent, transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Summary{
		Balance:        aggregate.TotalBalance(transactions),
		WeeklyIncome:   weekly.Income,
		WeeklyExpenses: weekly.Expenses,
		Recent:         recent,
	}
}
