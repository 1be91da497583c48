// Package async runs portal operations on background goroutines with the
// simulated latency the demo deployment advertises. Results and errors pass
// through a Deferred unchanged.
package async

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Default latency per operation class.
const (
	DefaultGetDelay    = 200 * time.Millisecond
	DefaultListDelay   = 300 * time.Millisecond
	DefaultWriteDelay  = 500 * time.Millisecond
	DefaultUploadDelay = 1000 * time.Millisecond
)

// Delays holds the simulated latency per operation class.
type Delays struct {
	Get    time.Duration // single-record reads
	List   time.Duration // collection reads
	Write  time.Duration // creates, updates, deletes
	Upload time.Duration // file uploads
}

// DefaultDelays returns the advertised demo latencies.
func DefaultDelays() Delays {
	return Delays{
		Get:    DefaultGetDelay,
		List:   DefaultListDelay,
		Write:  DefaultWriteDelay,
		Upload: DefaultUploadDelay,
	}
}

// ZeroDelays disables simulated latency; used by tests.
func ZeroDelays() Delays { return Delays{} }

// DelaysFromEnv returns the default delays with per-class millisecond
// overrides applied:
//
//	STAFFPORTAL_DELAY_GET_MS / _LIST_MS / _WRITE_MS / _UPLOAD_MS
//	STAFFPORTAL_DELAYS_DISABLED=true zeroes everything
func DelaysFromEnv() Delays {
	if v, err := strconv.ParseBool(os.Getenv("STAFFPORTAL_DELAYS_DISABLED")); err == nil && v {
		return ZeroDelays()
	}
	d := DefaultDelays()
	d.Get = envDelay("STAFFPORTAL_DELAY_GET_MS", d.Get)
	d.List = envDelay("STAFFPORTAL_DELAY_LIST_MS", d.List)
	d.Write = envDelay("STAFFPORTAL_DELAY_WRITE_MS", d.Write)
	d.Upload = envDelay("STAFFPORTAL_DELAY_UPLOAD_MS", d.Upload)
	return d
}

func envDelay(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// Deferred is the pending result of an operation started by Run.
type Deferred[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the operation completes or ctx is done. The operation
// keeps running after a cancelled Wait; only the caller gives up.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the result is available.
func (d *Deferred[T]) Done() <-chan struct{} { return d.done }

// Run starts fn on a new goroutine after the simulated delay and returns its
// pending result. A context cancelled during the delay resolves the Deferred
// with the context's error without invoking fn.
func Run[T any](ctx context.Context, delay time.Duration, fn func(ctx context.Context) (T, error)) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				d.err = ctx.Err()
				return
			}
		}
		d.val, d.err = fn(ctx)
	}()
	return d
}

// Resolved returns a Deferred already holding val; used where an operation
// short-circuits before reaching the store.
func Resolved[T any](val T, err error) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), val: val, err: err}
	close(d.done)
	return d
}
