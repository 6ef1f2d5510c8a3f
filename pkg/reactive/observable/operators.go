package observable

import (
	"github.com/rs/zerolog"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Map applies fn to every item. A panic in fn terminates the stream with
// an *errors.OperatorError.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return lift("map", src, func(s Subscriber[R]) Observer[T] {
		return ObserverFuncs[T]{
			Next: func(v T) {
				r, err := try("map", func() R { return fn(v) })
				if err != nil {
					s.OnError(err)
					return
				}
				s.OnNext(r)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
	})
}

// TryMap applies fn to every item and terminates the stream with the first
// error fn returns.
func TryMap[T, R any](src Observable[T], fn func(T) (R, error)) Observable[R] {
	type result struct {
		v   R
		err error
	}
	return lift("tryMap", src, func(s Subscriber[R]) Observer[T] {
		return ObserverFuncs[T]{
			Next: func(v T) {
				res, err := try("tryMap", func() result {
					r, err := fn(v)
					return result{r, err}
				})
				if err == nil && res.err != nil {
					err = rxerrors.NewOperatorError("tryMap", res.err)
				}
				if err != nil {
					s.OnError(err)
					return
				}
				s.OnNext(res.v)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
	})
}

// Filter forwards only the items for which pred returns true.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return lift("filter", src, func(s Subscriber[T]) Observer[T] {
		return ObserverFuncs[T]{
			Next: func(v T) {
				keep, err := try("filter", func() bool { return pred(v) })
				if err != nil {
					s.OnError(err)
					return
				}
				if keep {
					s.OnNext(v)
				}
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
	})
}

// DistinctUntilChanged drops items equal to their predecessor.
func DistinctUntilChanged[T comparable](src Observable[T]) Observable[T] {
	return Create(func(s Subscriber[T]) {
		var (
			last T
			seen bool
		)
		obs := ObserverFuncs[T]{
			Next: func(v T) {
				if seen && v == last {
					return
				}
				last, seen = v, true
				s.OnNext(v)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
		s.Add(subscribeOrFail("distinctUntilChanged", src, s, obs))
	})
}

// Take forwards the first n items and completes.
func Take[T any](src Observable[T], n int) Observable[T] {
	if err := validation.ValidateNonNegative("observable", "take", n); err != nil {
		return Fail[T](err)
	}
	if n == 0 {
		return Empty[T]()
	}
	return Create(func(s Subscriber[T]) {
		count := 0
		obs := ObserverFuncs[T]{
			Next: func(v T) {
				if count >= n {
					return
				}
				count++
				s.OnNext(v)
				if count == n {
					s.OnComplete()
				}
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
		s.Add(subscribeOrFail("take", src, s, obs))
	})
}

// Skip drops the first n items.
func Skip[T any](src Observable[T], n int) Observable[T] {
	if err := validation.ValidateNonNegative("observable", "skip", n); err != nil {
		return Fail[T](err)
	}
	return Create(func(s Subscriber[T]) {
		skipped := 0
		obs := ObserverFuncs[T]{
			Next: func(v T) {
				if skipped < n {
					skipped++
					return
				}
				s.OnNext(v)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
		s.Add(subscribeOrFail("skip", src, s, obs))
	})
}

// DoOnNext calls fn for every item before forwarding it.
func DoOnNext[T any](src Observable[T], fn func(T)) Observable[T] {
	return lift("doOnNext", src, func(s Subscriber[T]) Observer[T] {
		return ObserverFuncs[T]{
			Next: func(v T) {
				if _, err := try("doOnNext", func() struct{} { fn(v); return struct{}{} }); err != nil {
					s.OnError(err)
					return
				}
				s.OnNext(v)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
	})
}

// Log writes a debug line for every event passing through.
func Log[T any](src Observable[T], logger zerolog.Logger, name string) Observable[T] {
	logger = logger.With().Str("stream", name).Logger()
	return Create(func(s Subscriber[T]) {
		logger.Debug().Msg("subscribe")
		s.Add(disposable.New(func() { logger.Debug().Msg("dispose") }))
		obs := ObserverFuncs[T]{
			Next: func(v T) {
				logger.Debug().Interface("value", v).Msg("next")
				s.OnNext(v)
			},
			Error: func(err error) {
				logger.Debug().Err(err).Msg("error")
				s.OnError(err)
			},
			Complete: func() {
				logger.Debug().Msg("complete")
				s.OnComplete()
			},
		}
		s.Add(subscribeOrFail("log", src, s, obs))
	})
}

// subscribeOrFail subscribes obs to src, or fails s when src is nil.
func subscribeOrFail[T, R any](name string, src Observable[T], s Subscriber[R], obs Observer[T]) disposable.Disposable {
	if src == nil {
		s.OnError(nilObservable(name))
		return nil
	}
	return src.Subscribe(s.Context(), obs)
}
