package poll

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Until when the deadline passes before the
// condition is satisfied.
var ErrTimeout = errors.New("poll: condition not met before deadline")

// DefaultInterval is used when Until is given a non-positive interval.
const DefaultInterval = 500 * time.Millisecond

// Condition reports whether the awaited state has been reached. A non-nil
// error stops polling and is returned unchanged.
type Condition func(ctx context.Context) (bool, error)

// Until evaluates cond immediately and then once per interval until it
// reports true, timeout elapses, cond fails, or ctx is done. The interval is
// fixed; there is no backoff.
//
// cond receives a context bounded by timeout, so a blocking check is cut off
// at the deadline as well. Hitting the deadline yields ErrTimeout; a done ctx
// yields ctx.Err().
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(pollCtx)
		if err != nil {
			if pollCtx.Err() != nil {
				return expired(ctx)
			}
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-pollCtx.Done():
			return expired(ctx)
		case <-ticker.C:
		}
	}
}

// expired reports why the poll context ended: the parent's error if the
// parent is done, ErrTimeout otherwise.
func expired(parent context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return ErrTimeout
}
