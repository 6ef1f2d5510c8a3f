package scheduler

import (
	"fmt"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Scheduler runs tasks on some execution context.
type Scheduler interface {
	// Schedule queues task for execution. Disposing the returned handle
	// before the task starts prevents it from running. An error is returned
	// when the scheduler no longer accepts work.
	Schedule(task func()) (disposable.Disposable, error)
}

var errNilTask = fmt.Errorf("scheduler: task cannot be nil")

type immediate struct{}

// Immediate returns a Scheduler that runs each task inline on the calling
// goroutine before Schedule returns.
func Immediate() Scheduler {
	return immediate{}
}

func (immediate) Schedule(task func()) (disposable.Disposable, error) {
	if task == nil {
		return nil, errNilTask
	}
	task()
	return disposable.Disposed(), nil
}

type goroutine struct{}

// NewGoroutine returns a Scheduler that starts a new goroutine per task.
func NewGoroutine() Scheduler {
	return goroutine{}
}

func (goroutine) Schedule(task func()) (disposable.Disposable, error) {
	if task == nil {
		return nil, errNilTask
	}
	h := disposable.Empty()
	go func() {
		if !h.IsDisposed() {
			task()
		}
	}()
	return h, nil
}
