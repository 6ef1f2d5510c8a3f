package scheduler

import (
	"context"
	"sync"

	"github.com/ef-ds/deque"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Loop is a single-threaded event loop. Tasks run one at a time, in FIFO
// order, on whichever goroutine calls Run. It plays the role of a UI main
// thread: a consumer owns the goroutine and state touched only by tasks
// needs no locking.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   deque.Deque
	running bool
}

// NewLoop returns an idle Loop. Tasks queue until Run or RunPending drains them.
func NewLoop() *Loop {
	l := &Loop{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *Loop) Schedule(task func()) (disposable.Disposable, error) {
	if task == nil {
		return nil, errNilTask
	}
	h := disposable.Empty()
	l.mu.Lock()
	l.queue.PushBack(poolTask{fn: task, handle: h})
	l.mu.Unlock()
	l.cond.Signal()
	return h, nil
}

// Run executes tasks on the calling goroutine until ctx is done and
// returns ctx.Err(). Only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		panic("scheduler: Loop.Run called concurrently")
	}
	l.running = true
	l.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		l.mu.Lock()
		for l.queue.Len() == 0 && ctx.Err() == nil {
			l.cond.Wait()
		}
		if ctx.Err() != nil {
			l.mu.Unlock()
			return ctx.Err()
		}
		v, _ := l.queue.PopFront()
		l.mu.Unlock()

		if t := v.(poolTask); !t.handle.IsDisposed() {
			t.fn()
		}
	}
}

// RunPending executes the tasks queued so far, plus any they schedule,
// and returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		v, ok := l.queue.PopFront()
		l.mu.Unlock()
		if !ok {
			return n
		}
		if t := v.(poolTask); !t.handle.IsDisposed() {
			t.fn()
			n++
		}
	}
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}
