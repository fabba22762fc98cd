// Package ready waits, with a deadline and backoff, for the HMM to finish
// writing its per-base output.
package ready

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"pahmm/internal/predict"
)

// ErrTimeout is returned when the output did not become ready in time.
var ErrTimeout = errors.New("timed out waiting for prediction output")

// Options bound a wait. Delays start at Initial and double up to Max.
// Timeout 0 means a single check.
type Options struct {
	Initial time.Duration
	Max     time.Duration
	Timeout time.Duration
}

var DefaultOptions = Options{
	Initial: 250 * time.Millisecond,
	Max:     5 * time.Second,
	Timeout: 10 * time.Minute,
}

func (o Options) normalized() Options {
	if o.Initial <= 0 {
		o.Initial = DefaultOptions.Initial
	}
	if o.Max < o.Initial {
		o.Max = o.Initial
	}
	return o
}

// Check reports whether the awaited condition holds. An error is remembered
// and reported on timeout, but does not stop the wait.
type Check func() (bool, error)

// Poll runs check until it succeeds, ctx ends, or the timeout passes.
func Poll(ctx context.Context, opt Options, check Check) error {
	opt = opt.normalized()
	deadline := time.Now().Add(opt.Timeout)
	delay := opt.Initial
	var last error
	for {
		ok, err := check()
		if ok {
			return nil
		}
		last = err
		remaining := time.Until(deadline)
		if remaining <= 0 {
			if last != nil {
				return fmt.Errorf("%w: %w", ErrTimeout, last)
			}
			return ErrTimeout
		}
		if delay > remaining {
			delay = remaining
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if delay > opt.Max {
			delay = opt.Max
		}
	}
}

// NonEmpty checks that path exists and has data.
func NonEmpty(path string) Check {
	return func() (bool, error) {
		fi, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return false, nil
			}
			return false, err
		}
		return fi.Size() > 0, nil
	}
}

// Wait blocks until path exists and is non-empty.
func Wait(ctx context.Context, path string, opt Options) error {
	if err := Poll(ctx, opt, NonEmpty(path)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Waiter loads a prediction table once it is ready.
type Waiter interface {
	Table(ctx context.Context, path string) ([]predict.Record, error)
}

// FileWaiter polls the file system.
type FileWaiter struct {
	Options Options
}

// Table waits for path to hold at least one parsable data row and returns the
// parsed table. A half-written file is retried until the deadline. A file that
// still parses to no rows at the deadline is returned as an empty table. "-"
// is read from stdin without waiting.
func (w FileWaiter) Table(ctx context.Context, path string) ([]predict.Record, error) {
	if path == "-" {
		return predict.ReadFile(path)
	}
	var recs []predict.Record // nil unless the last check parsed cleanly
	exists := NonEmpty(path)
	err := Poll(ctx, w.Options, func() (bool, error) {
		recs = nil
		if ok, err := exists(); !ok || err != nil {
			return false, err
		}
		r, err := predict.ReadFile(path)
		if err != nil {
			return false, err
		}
		recs = r
		return len(r) > 0, nil
	})
	if errors.Is(err, ErrTimeout) && recs != nil {
		return recs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
