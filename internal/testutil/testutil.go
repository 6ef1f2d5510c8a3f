// Package testutil holds assertions and observers shared by the rxflow tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertSlice fails the test unless got and want hold the same elements in
// the same order. A nil and an empty slice are equal.
func AssertSlice[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (len %d), want %v (len %d)", got, len(got), want, len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v (first difference at index %d)", got, want, i)
		}
	}
}

// Recorder is an observer that records every event it receives. It is safe
// for concurrent use and satisfies observable.Observer[T].
type Recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool
	terminals int
	done      chan struct{}
	once      sync.Once
}

// NewRecorder returns an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{done: make(chan struct{})}
}

func (r *Recorder[T]) OnNext(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	r.err = err
	r.terminals++
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

func (r *Recorder[T]) OnComplete() {
	r.mu.Lock()
	r.completed = true
	r.terminals++
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

// Values returns a copy of the values received so far.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

// Len returns the number of values received so far.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Err returns the error received, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Completed reports whether OnComplete was received.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Terminals returns how many terminal events were received. Anything but
// 0 or 1 is a protocol violation.
func (r *Recorder[T]) Terminals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminals
}

// Done is closed on the first terminal event.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until a terminal event arrives, failing the test after
// TestTimeout.
func (r *Recorder[T]) Wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(TestTimeout):
		t.Fatalf("timed out waiting for terminal event; received %d values", r.Len())
	}
}
