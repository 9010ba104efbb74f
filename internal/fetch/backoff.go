package fetch

import (
	"dota-tracker/internal/constants"

	"github.com/sethvargo/go-retry"
)

// NewBackoff builds the retry policy for one match fetch: exponential
// delays starting at RetryBaseDelay, capped at RetryMaxDelay, stopping
// after FetchMaxAttempts total attempts. The policy is a plain value; the
// I/O loop that applies it lives in the orchestrator, so the curve is
// testable without timers via retry.Backoff.Next.
func NewBackoff() retry.Backoff {
	b := retry.NewExponential(constants.RetryBaseDelay)
	b = retry.WithCappedDuration(constants.RetryMaxDelay, b)
	b = retry.WithMaxRetries(constants.FetchMaxAttempts-1, b)
	return b
}
