package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) StatusCode() int { return int(e) }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), true},
		{"net timeout", timeoutErr{}, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"server error", statusErr(500), true},
		{"bad gateway", statusErr(502), true},
		{"not found", statusErr(404), false},
		{"forbidden", statusErr(403), false},
		{"plain error", errors.New("parse failure"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := DoWithPolicy(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", statusErr(503)
		}
		return "ok", nil
	}, 3, time.Millisecond)

	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" {
		t.Errorf("result = %q", got)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := DoWithPolicy(context.Background(), func(ctx context.Context) (string, error) {
		calls++
		return "", statusErr(404)
	}, 3, time.Millisecond)

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("non-retryable error must stop immediately, got %d attempts", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoWithPolicy(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, statusErr(500)
	}, 3, time.Millisecond)

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	// LastErrorOnly keeps the final error intact
	var sc HTTPStatusCarrier
	if !errors.As(err, &sc) || sc.StatusCode() != 500 {
		t.Errorf("final error lost its classification: %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	_, err := WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (struct{}, error) {
		select {
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		case <-time.After(time.Second):
			return struct{}{}, nil
		}
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
