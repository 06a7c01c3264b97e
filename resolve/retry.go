package resolve

import (
	"context"
	"time"

	"github.com/fwojciec/rulesbot"
)

// FetchFunc fetches a single value for url.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt number about to
// run and the error of the previous attempt.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff before each title fetch retry.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{250 * time.Millisecond}
}

// FetchWithRetry calls fetch up to len(delays)+1 times, sleeping delays[i]
// before retry i. ENOTFOUND errors are final: a missing page or title does
// not come back by asking again. The context bounds the whole sequence.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := fetch(ctx, url)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || rulesbot.ErrorCode(err) == rulesbot.ENOTFOUND {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
