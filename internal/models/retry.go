package models

import (
	"errors"
	"time"
)

const retryAttempts = 3

// withRetry retries a store operation with exponential backoff.
//
// Only ErrGeneral is retried. That error is what the callbacks map
// driver-level failures to, so everything behind it is potentially
// transient; domain errors and not-found are returned immediately.
func withRetry(op func() error) error {
	backoff := 50 * time.Millisecond

	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, ErrGeneral) {
			return err
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	return err
}
