package observable

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

type subscriber[T any] struct {
	ctx       context.Context
	observer  Observer[T]
	resources *disposable.Composite
	done      atomic.Bool
}

func newSubscriber[T any](parent context.Context, o Observer[T]) *subscriber[T] {
	ctx, cancel := context.WithCancel(parent)
	s := &subscriber[T]{
		ctx:       ctx,
		observer:  o,
		resources: &disposable.Composite{},
	}
	stop := context.AfterFunc(parent, s.Dispose)
	s.resources.Add(disposable.New(func() {
		stop()
		cancel()
	}))
	return s
}

func (s *subscriber[T]) OnNext(v T) {
	if s.done.Load() || s.IsDisposed() {
		return
	}
	s.observer.OnNext(v)
}

func (s *subscriber[T]) OnError(err error) {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	if !s.IsDisposed() {
		s.observer.OnError(err)
	}
	s.Dispose()
}

func (s *subscriber[T]) OnComplete() {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	if !s.IsDisposed() {
		s.observer.OnComplete()
	}
	s.Dispose()
}

func (s *subscriber[T]) Dispose() {
	s.resources.Dispose()
}

// IsDisposed also consults the context so that cancellation of a
// downstream subscription is visible upstream without waiting for the
// AfterFunc goroutine.
func (s *subscriber[T]) IsDisposed() bool {
	return s.resources.IsDisposed() || s.ctx.Err() != nil
}

func (s *subscriber[T]) Context() context.Context {
	return s.ctx
}

func (s *subscriber[T]) Add(d disposable.Disposable) bool {
	return s.resources.Add(d)
}

func (s *subscriber[T]) Remove(d disposable.Disposable) bool {
	return s.resources.Remove(d)
}

// serializer executes submitted functions one at a time. A function
// submitted while another is running, from any goroutine including the
// running one, is queued and executed by the goroutine already draining.
// Downstream callbacks funnelled through one serializer never overlap.
type serializer struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
}

func (q *serializer) run(f func()) {
	q.mu.Lock()
	if q.draining {
		q.queue = append(q.queue, f)
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	ok := false
	defer func() {
		if !ok {
			q.mu.Lock()
			q.draining = false
			q.queue = nil
			q.mu.Unlock()
		}
	}()

	for {
		f()

		q.mu.Lock()
		if len(q.queue) == 0 {
			q.draining = false
			q.mu.Unlock()
			ok = true
			return
		}
		f = q.queue[0]
		q.queue[0] = nil
		q.queue = q.queue[1:]
		q.mu.Unlock()
	}
}
