package observable

import (
	"sync"

	"github.com/ef-ds/deque"
	"go.uber.org/atomic"

	"github.com/vnykmshr/rxflow/pkg/reactive/scheduler"
)

// SubscribeOn performs the upstream subscription, and therefore the
// production of a synchronous source, as a task on sched.
func SubscribeOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	if src == nil {
		return Fail[T](nilObservable("subscribeOn"))
	}
	return Create(func(s Subscriber[T]) {
		h, err := sched.Schedule(func() {
			s.Add(src.Subscribe(s.Context(), s))
		})
		if err != nil {
			s.OnError(err)
			return
		}
		s.Add(h)
	})
}

type notification[T any] struct {
	value    T
	err      error
	terminal bool
}

// ObserveOn delivers every event as a task on sched. Events are queued
// per subscription and drained by one task at a time, so the subscriber
// sees them in order and never concurrently, whatever the scheduler.
func ObserveOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	if src == nil {
		return Fail[T](nilObservable("observeOn"))
	}
	return Create(func(s Subscriber[T]) {
		var (
			mu    sync.Mutex
			queue deque.Deque
			wip   atomic.Int32
		)

		drain := func() {
			missed := int32(1)
			for {
				for !s.IsDisposed() {
					mu.Lock()
					v, ok := queue.PopFront()
					mu.Unlock()
					if !ok {
						break
					}
					n := v.(notification[T])
					switch {
					case !n.terminal:
						s.OnNext(n.value)
					case n.err != nil:
						s.OnError(n.err)
					default:
						s.OnComplete()
					}
				}
				missed = wip.Sub(missed)
				if missed == 0 {
					return
				}
			}
		}

		push := func(n notification[T]) {
			mu.Lock()
			queue.PushBack(n)
			mu.Unlock()
			if wip.Inc() != 1 {
				return
			}
			if _, err := sched.Schedule(drain); err != nil {
				s.OnError(err)
			}
		}

		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next:     func(v T) { push(notification[T]{value: v}) },
			Error:    func(err error) { push(notification[T]{err: err, terminal: true}) },
			Complete: func() { push(notification[T]{terminal: true}) },
		}))
	})
}
