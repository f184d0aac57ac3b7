// Package retry provides the timeout / retry-with-backoff combinators shared
// by every outbound call in the enrichment pipeline.
package retry

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

const (
	DefaultAttempts     = 3
	DefaultInitialDelay = time.Second
)

// Op is any cancellable operation returning a value.
type Op[T any] func(ctx context.Context) (T, error)

// HTTPStatusCarrier lets transport errors expose their status code for
// retry classification without this package importing the transport.
type HTTPStatusCarrier interface {
	StatusCode() int
}

// Retryable reports whether err is worth another attempt: timeouts,
// connection resets and 5xx responses. 4xx and parse failures are final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var sc HTTPStatusCarrier
	if errors.As(err, &sc) {
		return sc.StatusCode() >= 500
	}

	return false
}

// Do runs op under the standard policy: DefaultAttempts attempts, exponential
// backoff starting at DefaultInitialDelay, retrying only Retryable errors.
func Do[T any](ctx context.Context, op Op[T]) (T, error) {
	return DoWithPolicy(ctx, op, DefaultAttempts, DefaultInitialDelay)
}

func DoWithPolicy[T any](ctx context.Context, op Op[T], attempts uint, initialDelay time.Duration) (T, error) {
	return retrygo.DoWithData(
		func() (T, error) {
			return op(ctx)
		},
		retrygo.Context(ctx),
		retrygo.Attempts(attempts),
		retrygo.Delay(initialDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.MaxJitter(0),
		retrygo.RetryIf(Retryable),
		retrygo.LastErrorOnly(true),
	)
}

// WithTimeout bounds op with its own deadline, independent of retries.
func WithTimeout[T any](ctx context.Context, d time.Duration, op Op[T]) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return op(ctx)
}
