package observable

import (
	"sync"

	"github.com/ef-ds/deque"
	"go.uber.org/atomic"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// FlatMap subscribes to fn(v) for every upstream item as soon as it
// arrives and merges the inner emissions in arrival order. It completes
// when the upstream and every inner have completed; the first error from
// any of them terminates the stream.
func FlatMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	if src == nil {
		return Fail[R](nilObservable("flatMap"))
	}
	return Create(func(s Subscriber[R]) {
		var ser serializer
		active := atomic.NewInt32(1)

		fail := func(err error) { ser.run(func() { s.OnError(err) }) }
		done := func() {
			if active.Dec() == 0 {
				ser.run(s.OnComplete)
			}
		}

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				inner, err := try("flatMap", func() Observable[R] { return fn(v) })
				if err == nil && inner == nil {
					err = nilObservable("flatMap")
				}
				if err != nil {
					fail(err)
					return
				}

				active.Inc()
				h := &disposable.Holder{}
				if !s.Add(h) {
					return
				}
				h.Set(inner.Subscribe(s.Context(), ObserverFuncs[R]{
					Next:  func(r R) { ser.run(func() { s.OnNext(r) }) },
					Error: fail,
					Complete: func() {
						s.Remove(h)
						done()
					},
				}))
			},
			Error:    fail,
			Complete: done,
		}))
	})
}

// ConcatMap maps every upstream item to an inner Observable and subscribes
// to them one at a time: the next inner starts only after the current one
// completes, so the output preserves upstream order.
func ConcatMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	if src == nil {
		return Fail[R](nilObservable("concatMap"))
	}
	return Create(func(s Subscriber[R]) {
		var (
			ser          serializer
			mu           sync.Mutex
			pending      deque.Deque
			active       bool
			upstreamDone bool
			wip          atomic.Int32
			inner        = &disposable.Holder{}
			drain        func()
		)
		s.Add(inner)

		fail := func(err error) { ser.run(func() { s.OnError(err) }) }

		drain = func() {
			if wip.Inc() != 1 {
				return
			}
			missed := int32(1)
			for {
				for !s.IsDisposed() {
					mu.Lock()
					if active {
						mu.Unlock()
						break
					}
					v, ok := pending.PopFront()
					if !ok {
						finished := upstreamDone
						mu.Unlock()
						if finished {
							ser.run(s.OnComplete)
						}
						break
					}
					active = true
					mu.Unlock()

					next, err := try("concatMap", func() Observable[R] { return fn(v.(T)) })
					if err == nil && next == nil {
						err = nilObservable("concatMap")
					}
					if err != nil {
						fail(err)
						return
					}
					inner.Set(next.Subscribe(s.Context(), ObserverFuncs[R]{
						Next:  func(r R) { ser.run(func() { s.OnNext(r) }) },
						Error: fail,
						Complete: func() {
							mu.Lock()
							active = false
							mu.Unlock()
							drain()
						},
					}))
				}

				missed = wip.Sub(missed)
				if missed == 0 {
					return
				}
			}
		}

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				mu.Lock()
				pending.PushBack(v)
				mu.Unlock()
				drain()
			},
			Error: fail,
			Complete: func() {
				mu.Lock()
				upstreamDone = true
				mu.Unlock()
				drain()
			},
		}))
	})
}

// SwitchMap subscribes to fn(v) for every upstream item and disposes the
// previous inner first. Only the latest inner's emissions reach the
// subscriber; anything a superseded inner emits is dropped.
func SwitchMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	if src == nil {
		return Fail[R](nilObservable("switchMap"))
	}
	return Create(func(s Subscriber[R]) {
		var (
			ser          serializer
			mu           sync.Mutex
			index        uint64
			innerActive  bool
			upstreamDone bool
			current      = &disposable.Holder{}
		)
		s.Add(current)

		isLatest := func(idx uint64) bool {
			mu.Lock()
			defer mu.Unlock()
			return idx == index
		}
		fail := func(err error) { ser.run(func() { s.OnError(err) }) }

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				mu.Lock()
				index++
				idx := index
				innerActive = true
				mu.Unlock()

				current.Set(nil)

				next, err := try("switchMap", func() Observable[R] { return fn(v) })
				if err == nil && next == nil {
					err = nilObservable("switchMap")
				}
				if err != nil {
					fail(err)
					return
				}
				current.Set(next.Subscribe(s.Context(), ObserverFuncs[R]{
					Next: func(r R) {
						ser.run(func() {
							if isLatest(idx) {
								s.OnNext(r)
							}
						})
					},
					Error: func(err error) {
						if isLatest(idx) {
							fail(err)
						}
					},
					Complete: func() {
						mu.Lock()
						if idx != index {
							mu.Unlock()
							return
						}
						innerActive = false
						finished := upstreamDone
						mu.Unlock()
						if finished {
							ser.run(s.OnComplete)
						}
					},
				}))
			},
			Error: fail,
			Complete: func() {
				mu.Lock()
				upstreamDone = true
				finished := !innerActive
				mu.Unlock()
				if finished {
					ser.run(s.OnComplete)
				}
			},
		}))
	})
}

// Concat subscribes to each source in turn, starting the next only after
// the previous one completes.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return ConcatMap(FromSlice(sources), identity[Observable[T]])
}

// Merge subscribes to every source at once and forwards their items in
// arrival order. It completes after all sources complete and fails on the
// first error.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return FlatMap(FromSlice(sources), identity[Observable[T]])
}

func identity[T any](v T) T {
	return v
}
