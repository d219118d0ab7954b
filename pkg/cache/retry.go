package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped by failures to reach a remote cache backend.
var ErrUnavailable = errors.New("cache backend unavailable")

// Default retry settings of remote backends.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 100 * time.Millisecond
)

// TransientError marks a failure a later attempt may not repeat.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a [TransientError]. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err or anything it wraps is a [TransientError].
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// backoff repeats an operation while it fails transiently, doubling the
// pause after each attempt.
type backoff struct {
	attempts int
	delay    time.Duration
}

func newBackoff(attempts int, delay time.Duration) backoff {
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return backoff{attempts: attempts, delay: delay}
}

// do runs fn until it succeeds, fails permanently, the attempts run out or
// ctx is done. It returns the last error.
func (b backoff) do(ctx context.Context, fn func() error) error {
	pause := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsTransient(err) || attempt == b.attempts {
			return err
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		pause *= 2
	}
}
