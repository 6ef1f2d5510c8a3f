package scheduler

import (
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Elastic is a scheduler for blocking I/O. Workers are started on demand up
// to a maximum and exit again after a period of idleness.
type Elastic struct {
	mu      sync.RWMutex
	pool    *workerpool.WorkerPool
	stopped bool
}

// NewElastic returns an Elastic scheduler with at most maxWorkers
// concurrent tasks.
func NewElastic(maxWorkers int) (*Elastic, error) {
	if err := validation.ValidatePositive("scheduler", "maxWorkers", maxWorkers); err != nil {
		return nil, err
	}
	return &Elastic{pool: workerpool.New(maxWorkers)}, nil
}

func (e *Elastic) Schedule(task func()) (disposable.Disposable, error) {
	if task == nil {
		return nil, errNilTask
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stopped {
		return nil, fmt.Errorf("cannot schedule task on elastic scheduler: %w", rxerrors.ErrShutdown)
	}

	h := disposable.Empty()
	e.pool.Submit(func() {
		if !h.IsDisposed() {
			task()
		}
	})
	return h, nil
}

// WaitingQueueSize returns the number of tasks waiting for a worker.
func (e *Elastic) WaitingQueueSize() int {
	return e.pool.WaitingQueueSize()
}

// Stop rejects new tasks and blocks until every queued task has run.
func (e *Elastic) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.mu.Unlock()

	e.pool.StopWait()
}
