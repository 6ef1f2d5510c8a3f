package observable

import (
	"context"
	"fmt"
	"sync"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// ForEach subscribes to src and calls fn for every item on the emitting
// goroutine. It blocks until src terminates, fn returns an error, or ctx is
// done, and returns the error that ended the stream.
func ForEach[T any](ctx context.Context, src Observable[T], fn func(T) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if src == nil {
		return nilObservable("forEach")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once   sync.Once
		result error
		done   = make(chan struct{})
	)
	finish := func(err error) {
		once.Do(func() {
			result = err
			close(done)
		})
	}

	d := src.Subscribe(ctx, ObserverFuncs[T]{
		Next: func(v T) {
			if err := fn(v); err != nil {
				finish(err)
				cancel()
			}
		},
		Error:    finish,
		Complete: func() { finish(nil) },
	})
	defer d.Dispose()

	select {
	case <-done:
		return result
	case <-ctx.Done():
		select {
		case <-done:
			return result
		default:
		}
		return ctx.Err()
	}
}

// ToSlice collects every item of src until it completes.
func ToSlice[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	var (
		mu    sync.Mutex
		items []T
	)
	err := ForEach(ctx, src, func(v T) error {
		mu.Lock()
		items = append(items, v)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	return items, nil
}

// Last returns the final item of src, or an error wrapping
// errors.ErrEmptySource if src completed without items.
func Last[T any](ctx context.Context, src Observable[T]) (T, error) {
	return lastOf(ctx, "last", src)
}

// First returns the first item of src and disposes the subscription.
func First[T any](ctx context.Context, src Observable[T]) (T, error) {
	return lastOf(ctx, "first", Take(src, 1))
}

func lastOf[T any](ctx context.Context, op string, src Observable[T]) (T, error) {
	var (
		mu   sync.Mutex
		last T
		seen bool
	)
	err := ForEach(ctx, src, func(v T) error {
		mu.Lock()
		last, seen = v, true
		mu.Unlock()
		return nil
	})
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		var zero T
		return zero, err
	}
	if !seen {
		return last, fmt.Errorf("%s: %w", op, rxerrors.ErrEmptySource)
	}
	return last, nil
}

