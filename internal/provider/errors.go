package provider

import (
	"context"
	"errors"
	"fmt"
)

// ProviderError is a non-2xx HTTP response from the provider. It is never
// retried; the status is surfaced to the caller immediately.
type ProviderError struct {
	Status int
	URL    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d for %s", e.Status, e.URL)
}

// TimeoutError is an aborted or deadline-expired request. Retryable within
// the attempt budget.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// NetworkError is a transport-level failure (connection refused, reset,
// DNS). Retryable within the same attempt budget as timeouts.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Retryable reports whether err is worth another attempt. HTTP-level
// failures are definitive; only transport errors and timeouts qualify.
func Retryable(err error) bool {
	var te *TimeoutError
	var ne *NetworkError
	if errors.As(err, &te) || errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
