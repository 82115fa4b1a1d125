package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a backend failure that may succeed on another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// transient marks err as worth retrying. A nil err stays nil.
func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// backoff retries transient failures with a doubling delay.
type backoff struct {
	attempts int
	delay    time.Duration
}

// newBackoff returns a three-attempt policy starting at delay (100ms when zero).
func newBackoff(delay time.Duration) backoff {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return backoff{attempts: 3, delay: delay}
}

// do runs fn until it succeeds, fails permanently or the attempts run out.
// The transient marker is stripped from the returned error.
func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		if attempt >= b.attempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return errors.Unwrap(err)
}
