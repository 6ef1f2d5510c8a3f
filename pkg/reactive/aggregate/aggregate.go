// Package aggregate provides operators that reduce a finite stream to a
// single value emitted when the source completes.
package aggregate

import (
	"fmt"

	"golang.org/x/exp/constraints"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// fold subscribes to src with per-subscription state created by start.
// next sees every item; done runs on completion and emits the result.
// Errors raised by fold itself are prefixed with op.
func fold[T, R any](op string, src observable.Observable[T], start func(s observable.Subscriber[R]) (next func(T), done func())) observable.Observable[R] {
	return observable.Create(func(s observable.Subscriber[R]) {
		if src == nil {
			s.OnError(fmt.Errorf("%s: %w", op, rxerrors.ErrNilObservable))
			return
		}
		next, done := start(s)
		s.Add(src.Subscribe(s.Context(), observable.ObserverFuncs[T]{
			Next:     next,
			Error:    s.OnError,
			Complete: done,
		}))
	})
}

func emit[R any](s observable.Subscriber[R], v R) {
	s.OnNext(v)
	s.OnComplete()
}

func empty(op string) error {
	return fmt.Errorf("%s: %w", op, rxerrors.ErrEmptySource)
}

// Max emits the largest item. An empty source fails with ErrEmptySource.
func Max[T constraints.Ordered](src observable.Observable[T]) observable.Observable[T] {
	return extreme("max", src, func(a, b T) bool { return a > b })
}

// Min emits the smallest item. An empty source fails with ErrEmptySource.
func Min[T constraints.Ordered](src observable.Observable[T]) observable.Observable[T] {
	return extreme("min", src, func(a, b T) bool { return a < b })
}

// MaxFunc emits the item cmp ranks highest; cmp returns a negative number
// when a < b, zero when equal and a positive number when a > b. Ties keep
// the earliest item.
func MaxFunc[T any](src observable.Observable[T], cmp func(a, b T) int) observable.Observable[T] {
	return extreme("max", src, func(a, b T) bool { return cmp(a, b) > 0 })
}

// MinFunc emits the item cmp ranks lowest. Ties keep the earliest item.
func MinFunc[T any](src observable.Observable[T], cmp func(a, b T) int) observable.Observable[T] {
	return extreme("min", src, func(a, b T) bool { return cmp(a, b) < 0 })
}

// extreme keeps the item for which better(candidate, best) holds.
func extreme[T any](op string, src observable.Observable[T], better func(a, b T) bool) observable.Observable[T] {
	return fold(op, src, func(s observable.Subscriber[T]) (func(T), func()) {
		var (
			best T
			seen bool
		)
		next := func(v T) {
			if !seen {
				best, seen = v, true
				return
			}
			replace, err := call(op, func() bool { return better(v, best) })
			if err != nil {
				s.OnError(err)
				return
			}
			if replace {
				best = v
			}
		}
		done := func() {
			if !seen {
				s.OnError(empty(op))
				return
			}
			emit(s, best)
		}
		return next, done
	})
}

// Sum emits the total of all items, or zero for an empty source.
func Sum[T Number](src observable.Observable[T]) observable.Observable[T] {
	return fold("sum", src, func(s observable.Subscriber[T]) (func(T), func()) {
		var total T
		return func(v T) { total += v }, func() { emit(s, total) }
	})
}

// Average emits the arithmetic mean as a float64. The sum is accumulated
// in float64 so integer sources do not overflow or truncate. An empty
// source fails with ErrEmptySource.
func Average[T Number](src observable.Observable[T]) observable.Observable[float64] {
	return fold("average", src, func(s observable.Subscriber[float64]) (func(T), func()) {
		var (
			total float64
			n     int64
		)
		next := func(v T) {
			total += float64(v)
			n++
		}
		done := func() {
			if n == 0 {
				s.OnError(empty("average"))
				return
			}
			emit(s, total/float64(n))
		}
		return next, done
	})
}

// Count emits the number of items received.
func Count[T any](src observable.Observable[T]) observable.Observable[int64] {
	return fold("count", src, func(s observable.Subscriber[int64]) (func(T), func()) {
		var n int64
		return func(T) { n++ }, func() { emit(s, n) }
	})
}

// Reduce combines items pairwise, using the first item as the initial
// accumulator. An empty source completes without emitting.
func Reduce[T any](src observable.Observable[T], fn func(acc, v T) T) observable.Observable[T] {
	return fold("reduce", src, func(s observable.Subscriber[T]) (func(T), func()) {
		var (
			acc  T
			seen bool
		)
		next := func(v T) {
			if !seen {
				acc, seen = v, true
				return
			}
			r, err := call("reduce", func() T { return fn(acc, v) })
			if err != nil {
				s.OnError(err)
				return
			}
			acc = r
		}
		done := func() {
			if seen {
				s.OnNext(acc)
			}
			s.OnComplete()
		}
		return next, done
	})
}

// ReduceWithSeed combines items into seed and always emits the result,
// which is seed itself for an empty source.
func ReduceWithSeed[T, A any](src observable.Observable[T], seed A, fn func(acc A, v T) A) observable.Observable[A] {
	return fold("reduce", src, func(s observable.Subscriber[A]) (func(T), func()) {
		acc := seed
		next := func(v T) {
			r, err := call("reduce", func() A { return fn(acc, v) })
			if err != nil {
				s.OnError(err)
				return
			}
			acc = r
		}
		return next, func() { emit(s, acc) }
	})
}

func call[R any](op string, f func() R) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = rxerrors.Recovered(op, p)
		}
	}()
	return f(), nil
}
