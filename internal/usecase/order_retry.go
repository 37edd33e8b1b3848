package usecase

import (
	"context"
	"errors"
	"log"

	"order_management/internal/infrastructure/metrics"
	"order_management/internal/usecase/interfaces"
)

const defaultMaxAttempts = 3

// retryOnStale re-runs fn while the order write loses an optimistic version race.
// fn must re-read the order on every call.
func retryOnStale(ctx context.Context, maxAttempts int, operation, orderID string, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	for attempt := 1; ; attempt++ {
		err := fn()
		if !errors.Is(err, interfaces.ErrStaleOrder) {
			return err
		}
		if attempt >= maxAttempts {
			log.Printf("[order][retry] giving up op=%s order_id=%s attempts=%d", operation, orderID, attempt)
			return ErrConcurrentUpdate
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		metrics.LedgerRetry(operation)
		log.Printf("[order][retry] stale order, retrying op=%s order_id=%s attempt=%d", operation, orderID, attempt)
	}
}
