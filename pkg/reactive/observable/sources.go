package observable

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Just emits the given values in order and completes.
func Just[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice emits the elements of items in order and completes.
func FromSlice[T any](items []T) Observable[T] {
	return Create(func(s Subscriber[T]) {
		for _, v := range items {
			if s.IsDisposed() {
				return
			}
			s.OnNext(v)
		}
		s.OnComplete()
	})
}

// Range emits count consecutive integers starting at start.
func Range(start, count int) Observable[int] {
	if err := validation.ValidateNonNegative("observable", "count", count); err != nil {
		return Fail[int](err)
	}
	return Create(func(s Subscriber[int]) {
		for i := start; i < start+count; i++ {
			if s.IsDisposed() {
				return
			}
			s.OnNext(i)
		}
		s.OnComplete()
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Observable[T] {
	return Create(func(s Subscriber[T]) {
		s.OnComplete()
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Observable[T] {
	return Create(func(Subscriber[T]) {})
}

// Fail terminates every subscription with err.
func Fail[T any](err error) Observable[T] {
	return Create(func(s Subscriber[T]) {
		s.OnError(err)
	})
}

// Defer calls factory for each subscription and subscribes to the
// Observable it returns.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return Create(func(s Subscriber[T]) {
		src, err := try("defer", factory)
		if err != nil {
			s.OnError(err)
			return
		}
		if src == nil {
			s.OnError(nilObservable("defer"))
			return
		}
		s.Add(src.Subscribe(s.Context(), s))
	})
}

// FromChannel emits values received from ch and completes when ch is
// closed. Values are read on a dedicated goroutine that exits when the
// subscription ends.
func FromChannel[T any](ch <-chan T) Observable[T] {
	return Create(func(s Subscriber[T]) {
		ctx := s.Context()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case v, ok := <-ch:
					if !ok {
						s.OnComplete()
						return
					}
					s.OnNext(v)
				}
			}
		}()
	})
}

// Timer emits 0 after delay and completes.
func Timer(delay time.Duration, opts ...Option) Observable[int64] {
	if err := validation.ValidateNonNegativeDuration("observable", "delay", delay); err != nil {
		return Fail[int64](err)
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[int64]) {
		t := o.clock.AfterFunc(delay, func() {
			s.OnNext(0)
			s.OnComplete()
		})
		s.Add(stopOnDispose(t))
	})
}

// Interval emits 0, 1, 2, ... once per period until disposed.
func Interval(period time.Duration, opts ...Option) Observable[int64] {
	if err := validation.ValidatePositiveDuration("observable", "period", period); err != nil {
		return Fail[int64](err)
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[int64]) {
		var (
			ser   serializer
			n     int64
			timer = &disposable.Holder{}
			tick  func()
		)
		s.Add(timer)

		tick = func() {
			timer.Set(stopOnDispose(o.clock.AfterFunc(period, tick)))
			ser.run(func() {
				v := n
				n++
				s.OnNext(v)
			})
		}
		timer.Set(stopOnDispose(o.clock.AfterFunc(period, tick)))
	})
}

// Cron emits the scheduled time at every activation of a standard 5-field
// cron expression, such as "*/5 * * * *".
func Cron(expr string, opts ...Option) Observable[time.Time] {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return Fail[time.Time](rxerrors.NewValidationError("observable", "cron", expr, err.Error()).
			WithHint("use a standard expression such as \"*/5 * * * *\""))
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[time.Time]) {
		var (
			ser   serializer
			timer = &disposable.Holder{}
			arm   func()
		)
		s.Add(timer)

		arm = func() {
			now := o.clock.Now()
			next := schedule.Next(now)
			if next.IsZero() {
				ser.run(s.OnComplete)
				return
			}
			timer.Set(stopOnDispose(o.clock.AfterFunc(next.Sub(now), func() {
				arm()
				ser.run(func() { s.OnNext(next) })
			})))
		}
		arm()
	})
}

func stopOnDispose(t *clock.Timer) disposable.Disposable {
	return disposable.New(func() { t.Stop() })
}
