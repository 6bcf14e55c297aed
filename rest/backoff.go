package rest

import (
	"context"
	"time"
)

const (
	DefaultRetryCount = 3
	DefaultBaseDelay  = 5 * time.Second
)

// BackoffDelay returns the wait after the given 1-indexed attempt: (2^attempt - 1) * baseDelay.
// There is no cap and no jitter.
func BackoffDelay(attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 1 {
		return 0
	}
	return time.Duration((1<<attempt)-1) * baseDelay
}

// IsRetriable reports whether a response status is worth another attempt.
func IsRetriable(statusCode int) bool {
	return statusCode == 409 || statusCode == 429 || statusCode >= 500
}

type SleepFunc func(ctx context.Context, delay time.Duration) error

func Sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
