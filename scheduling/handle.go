package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrTaskDiscarded is carried by handles whose task was removed from the
	// queue before any worker started it.
	ErrTaskDiscarded = errors.New("scheduling: task discarded before it started")

	// ErrPoolTerminated is carried by handles submitted after termination.
	ErrPoolTerminated = errors.New("scheduling: pool terminated")

	// ErrTaskPanicked wraps the value recovered from a panicking computation.
	ErrTaskPanicked = errors.New("scheduling: task panicked")
)

// A Handle gives access to the eventual result of a submitted computation.
type Handle[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

// Resolved returns a handle that has already completed with v.
func Resolved[T any](v T) *Handle[T] {
	h := newHandle[T]()
	h.resolve(v, nil)

	return h
}

// Failed returns a handle that has already completed with err.
func Failed[T any](err error) *Handle[T] {
	h := newHandle[T]()

	var zero T
	h.resolve(zero, err)

	return h
}

func (h *Handle[T]) resolve(v T, err error) {
	h.once.Do(func() {
		h.value = v
		h.err = err
		close(h.done)
	})
}

// Done returns a channel that is closed once the result is available.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the computation completes and returns its result.
func (h *Handle[T]) Wait() (T, error) {
	<-h.done

	return h.value, h.err
}

// WaitContext is Wait that gives up when ctx is done. Giving up does not
// cancel the computation.
func (h *Handle[T]) WaitContext(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// A Task is a unit of work that a Scheduler can run or drop.
type Task interface {
	// Run executes the task and returns the error it produced, if any. Run
	// never panics.
	Run() error

	// Discard completes the task with err without running it.
	Discard(err error)
}

type task[T any] struct {
	handle *Handle[T]
	fn     func() (T, error)
}

func (t *task[T]) Run() (err error) {
	var v T

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			var zero T
			t.handle.resolve(zero, err)
		}
	}()

	v, err = t.fn()
	t.handle.resolve(v, err)

	return err
}

func (t *task[T]) Discard(err error) {
	var zero T
	t.handle.resolve(zero, err)
}

// Submit enqueues fn on s and returns a handle to its result. Submission never
// blocks. Arguments are bound by the closure.
func Submit[T any](s Scheduler, fn func() (T, error)) *Handle[T] {
	t := &task[T]{
		handle: newHandle[T](),
		fn:     fn,
	}

	s.Enqueue(t)

	return t.handle
}
