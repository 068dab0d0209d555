package store

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/sethvargo/go-retry"
)

// maxRetries bounds how many times a retryable failure is re-attempted.
const maxRetries = 3

// withRetry runs fn and re-runs it with exponential backoff while the
// dialect's classifier reports the failure as [Retryable]. Without a
// classifier fn runs once.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	if db.errorClassificator == nil {
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(db.retryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().
				Err(err).
				Int("attempt", attempt).
				Str("func", "*DB.withRetry").
				Msg("retryable database error")
			return retry.RetryableError(err)
		}
		return err
	})
}
