package observable

import (
	"time"

	"github.com/ef-ds/deque"

	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Buffer collects items into consecutive windows of length timespan and
// emits each window's batch at its boundary, including empty batches.
// When the source completes, a non-empty partial batch is emitted before
// completion. On error the partial batch is discarded.
func Buffer[T any](src Observable[T], timespan time.Duration, opts ...Option) Observable[[]T] {
	if err := validation.ValidatePositiveDuration("observable", "timespan", timespan); err != nil {
		return Fail[[]T](err)
	}
	if src == nil {
		return Fail[[]T](nilObservable("buffer"))
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[[]T]) {
		var (
			ser   serializer
			batch []T
			timer = &disposable.Holder{}
			tick  func()
		)
		s.Add(timer)

		tick = func() {
			timer.Set(stopOnDispose(o.clock.AfterFunc(timespan, tick)))
			ser.run(func() {
				out := batch
				batch = nil
				if out == nil {
					out = []T{}
				}
				s.OnNext(out)
			})
		}
		timer.Set(stopOnDispose(o.clock.AfterFunc(timespan, tick)))

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				ser.run(func() { batch = append(batch, v) })
			},
			Error: func(err error) {
				ser.run(func() {
					batch = nil
					s.OnError(err)
				})
			},
			Complete: func() {
				ser.run(func() {
					if len(batch) > 0 {
						out := batch
						batch = nil
						s.OnNext(out)
					}
					s.OnComplete()
				})
			},
		}))
	})
}

// Debounce emits an item only after timeout has passed without another
// item arriving. A pending item is emitted when the source completes.
func Debounce[T any](src Observable[T], timeout time.Duration, opts ...Option) Observable[T] {
	if err := validation.ValidatePositiveDuration("observable", "timeout", timeout); err != nil {
		return Fail[T](err)
	}
	if src == nil {
		return Fail[T](nilObservable("debounce"))
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[T]) {
		var (
			ser     serializer
			pending T
			has     bool
			gen     uint64
			timer   = &disposable.Holder{}
		)
		s.Add(timer)

		take := func() T {
			var zero T
			v := pending
			pending, has = zero, false
			return v
		}

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				ser.run(func() {
					pending, has = v, true
					gen++
					g := gen
					timer.Set(stopOnDispose(o.clock.AfterFunc(timeout, func() {
						ser.run(func() {
							if has && g == gen {
								s.OnNext(take())
							}
						})
					})))
				})
			},
			Error: func(err error) {
				ser.run(func() {
					take()
					s.OnError(err)
				})
			},
			Complete: func() {
				ser.run(func() {
					timer.Set(nil)
					if has {
						s.OnNext(take())
					}
					s.OnComplete()
				})
			},
		}))
	})
}

type delayed[T any] struct {
	value    T
	due      time.Time
	complete bool
}

// Delay shifts every item and the completion forward in time by d,
// preserving their order. Errors are forwarded immediately.
func Delay[T any](src Observable[T], d time.Duration, opts ...Option) Observable[T] {
	if err := validation.ValidateNonNegativeDuration("observable", "delay", d); err != nil {
		return Fail[T](err)
	}
	if src == nil {
		return Fail[T](nilObservable("delay"))
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[T]) {
		var (
			ser   serializer
			queue deque.Deque
			armed bool
			timer = &disposable.Holder{}
			arm   func()
			fire  func()
		)
		s.Add(timer)

		// arm and fire run inside ser.
		arm = func() {
			if armed {
				return
			}
			head, ok := queue.Front()
			if !ok {
				return
			}
			armed = true
			wait := head.(delayed[T]).due.Sub(o.clock.Now())
			timer.Set(stopOnDispose(o.clock.AfterFunc(wait, func() { ser.run(fire) })))
		}
		fire = func() {
			armed = false
			now := o.clock.Now()
			var due []delayed[T]
			for {
				head, ok := queue.Front()
				if !ok || head.(delayed[T]).due.After(now) {
					break
				}
				queue.PopFront()
				due = append(due, head.(delayed[T]))
			}
			arm()
			for _, e := range due {
				if e.complete {
					s.OnComplete()
					return
				}
				s.OnNext(e.value)
			}
		}
		enqueue := func(e delayed[T]) {
			ser.run(func() {
				queue.PushBack(e)
				arm()
			})
		}

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				enqueue(delayed[T]{value: v, due: o.clock.Now().Add(d)})
			},
			Error: func(err error) {
				ser.run(func() { s.OnError(err) })
			},
			Complete: func() {
				enqueue(delayed[T]{due: o.clock.Now().Add(d), complete: true})
			},
		}))
	})
}
