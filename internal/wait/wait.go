// Package wait polls a condition until it holds or a deadline elapses.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Norgate-AV/comdlg/internal/timeouts"
)

// ErrTimeout is matched by every TimeoutError.
var ErrTimeout = errors.New("timeout exceeded")

// TimeoutError reports which operation gave up waiting and after how long.
type TimeoutError struct {
	Op       string
	Elapsed  time.Duration
	Deadline time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %s after %v (deadline %v)", e.Op, ErrTimeout, e.Elapsed.Round(time.Millisecond), e.Deadline)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// Clock abstracts time so polling can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

// Waiter holds the polling cadence for a family of waits.
type Waiter struct {
	Interval time.Duration
	Deadline time.Duration
	Clock    Clock
}

// New returns a Waiter on the wall clock.
func New(interval, deadline time.Duration) Waiter {
	return Waiter{Interval: interval, Deadline: deadline, Clock: RealClock()}
}

// Default returns a Waiter with the standard poll interval and dialog deadline.
func Default() Waiter {
	return New(timeouts.StatePollingInterval, timeouts.DialogOpenTimeout)
}

// WithDeadline returns a copy of w with a different deadline.
func (w Waiter) WithDeadline(d time.Duration) Waiter {
	w.Deadline = d
	return w
}

func (w Waiter) clock() Clock {
	if w.Clock == nil {
		return RealClock()
	}

	return w.Clock
}

// Until evaluates cond immediately and then once per Interval until it
// reports true. An error from cond aborts the wait and is returned as is.
// If the deadline passes first a *TimeoutError naming op is returned; the
// last evaluation happens at the deadline itself.
func (w Waiter) Until(ctx context.Context, op string, cond func() (bool, error)) error {
	clk := w.clock()
	start := clk.Now()

	for {
		done, err := cond()
		if err != nil {
			return err
		}

		if done {
			return nil
		}

		elapsed := clk.Now().Sub(start)
		if elapsed >= w.Deadline {
			return &TimeoutError{Op: op, Elapsed: elapsed, Deadline: w.Deadline}
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		pause := w.Interval
		if remaining := w.Deadline - elapsed; remaining < pause {
			pause = remaining
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-clk.After(pause):
		}
	}
}

// Poll is Until for conditions that produce a value once they hold.
func Poll[T any](ctx context.Context, w Waiter, op string, fn func() (T, bool, error)) (T, error) {
	var result T

	err := w.Until(ctx, op, func() (bool, error) {
		v, ok, err := fn()
		if ok {
			result = v
		}

		return ok, err
	})

	return result, err
}

// Sleep pauses for d on the waiter's clock, returning early if ctx ends.
func (w Waiter) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.clock().After(d):
		return nil
	}
}
