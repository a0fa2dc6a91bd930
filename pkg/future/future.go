// Package future provides a single-assignment deferred result. A Future is
// settled exactly once, either with a value or with an error; later attempts
// are ignored and reported through the boolean return values.
package future

import (
	"context"
	"errors"
	"sync"
)

// ErrNilFuture is returned by All when one of the inputs is nil.
var ErrNilFuture = errors.New("future: nil future")

// Future holds a value of type T that becomes available later.
type Future[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	value   T
	err     error
}

// New returns an unsettled future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future already settled with value.
func Completed[T any](value T) *Future[T] {
	f := New[T]()
	f.Complete(value)
	return f
}

// Failed returns a future already settled with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Complete settles the future with value. It returns false when the future
// was already settled.
func (f *Future[T]) Complete(value T) bool {
	return f.settle(value, nil)
}

// Fail settles the future with err. It returns false when the future was
// already settled.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		err = errors.New("future: failed with nil error")
	}
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(value T, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settled {
		return false
	}
	f.settled = true
	f.value = value
	f.err = err
	close(f.done)
	return true
}

// Done is closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether a value or an error has been recorded.
func (f *Future[T]) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Get blocks until the future is settled or ctx is done.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// All waits for every future and returns their values in order. The first
// failure, in input order, is returned.
func All[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	out := make([]T, 0, len(futures))
	for _, f := range futures {
		if f == nil {
			return nil, ErrNilFuture
		}
		value, err := f.Get(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}
