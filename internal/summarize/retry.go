// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

// RetryPolicy bounds repeated chat service invocations. Zero values fall
// back to 3 attempts with a 1 s fixed delay.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Invoke calls fn up to MaxAttempts times with a fixed delay between
// attempts. After exhausting attempts it degrades to a sentinel response
// embedding the last error instead of failing: one bad turn weakens a
// summary but never aborts the run.
func (p RetryPolicy) Invoke(ctx context.Context, fn func(context.Context) (string, error)) string {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "Error: " + ctx.Err().Error()
			case <-time.After(delay):
			}
		}

		resp, err := fn(ctx)
		if err == nil {
			return resp
		}
		lastErr = err
	}
	return "Error: " + lastErr.Error()
}
