package scheduler

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/ef-ds/deque"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/metrics"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// PoolConfig holds configuration options for creating a worker pool.
type PoolConfig struct {
	// Name labels log lines and metrics. Defaults to "pool".
	Name string

	// Workers is the number of workers in the pool.
	// Must be greater than 0.
	Workers int

	// Logger receives panic reports. The zero value discards them.
	Logger zerolog.Logger

	// Metrics, when set, records task counts, durations and queue depth.
	Metrics *metrics.Registry

	// PanicHandler is called when a task panics, after the panic is logged.
	PanicHandler func(recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)
}

// Pool is a fixed-size worker pool with an unbounded FIFO queue. Tasks
// submitted from inside a running task never block.
type Pool struct {
	config PoolConfig

	mu         sync.Mutex
	cond       *sync.Cond
	queue      deque.Deque
	isShutdown bool

	shutdownOnce sync.Once
	done         chan struct{}
	workerWg     sync.WaitGroup

	activeWorkers  atomic.Int32
	totalSubmitted atomic.Int64
	totalCompleted atomic.Int64
}

type poolTask struct {
	fn     func()
	handle disposable.Disposable
}

// NewPool creates a worker pool and starts its workers.
func NewPool(config PoolConfig) (*Pool, error) {
	if err := validation.ValidatePositive("scheduler", "workers", config.Workers); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "pool"
	}

	p := &Pool{
		config: config,
		done:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < config.Workers; i++ {
		p.workerWg.Add(1)
		go p.run(i)
	}
	return p, nil
}

// Schedule adds a task to the queue. It returns ErrShutdown once Shutdown
// has been called.
func (p *Pool) Schedule(task func()) (disposable.Disposable, error) {
	if task == nil {
		return nil, errNilTask
	}

	p.mu.Lock()
	if p.isShutdown {
		p.mu.Unlock()
		return nil, fmt.Errorf("cannot schedule task on %s: %w", p.config.Name, rxerrors.ErrShutdown)
	}
	h := disposable.Empty()
	p.queue.PushBack(poolTask{fn: task, handle: h})
	if m := p.config.Metrics; m != nil {
		m.SchedulerQueued.WithLabelValues(p.config.Name).Set(float64(p.queue.Len()))
	}
	p.mu.Unlock()

	p.cond.Signal()
	p.totalSubmitted.Inc()
	return h, nil
}

// Shutdown stops accepting tasks, lets the workers drain the queue and
// returns a channel that closes once every worker has exited.
func (p *Pool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()
		p.cond.Broadcast()

		go func() {
			p.workerWg.Wait()
			close(p.done)
		}()
	})
	return p.done
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.config.Workers
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *Pool) QueueSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *Pool) ActiveWorkers() int {
	return int(p.activeWorkers.Load())
}

// TotalSubmitted returns the total number of tasks scheduled on the pool.
func (p *Pool) TotalSubmitted() int64 {
	return p.totalSubmitted.Load()
}

// TotalCompleted returns the total number of tasks that finished, including
// ones that panicked.
func (p *Pool) TotalCompleted() int64 {
	return p.totalCompleted.Load()
}

// next blocks until a task is available. It returns false when the pool is
// shut down and the queue is empty.
func (p *Pool) next() (poolTask, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.queue.Len() == 0 && !p.isShutdown {
		p.cond.Wait()
	}
	v, ok := p.queue.PopFront()
	if !ok {
		return poolTask{}, false
	}
	if m := p.config.Metrics; m != nil {
		m.SchedulerQueued.WithLabelValues(p.config.Name).Set(float64(p.queue.Len()))
	}
	return v.(poolTask), true
}

// run is the main loop for a worker.
func (p *Pool) run(id int) {
	defer p.workerWg.Done()

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(id)
	}
	if p.config.OnWorkerStop != nil {
		defer p.config.OnWorkerStop(id)
	}

	for {
		t, ok := p.next()
		if !ok {
			return
		}
		if t.handle.IsDisposed() {
			continue
		}
		p.execute(t)
	}
}

// execute runs a single task, recovering panics so the worker survives.
func (p *Pool) execute(t poolTask) {
	start := time.Now()
	p.activeWorkers.Inc()

	defer func() {
		if r := recover(); r != nil {
			p.config.Logger.Error().
				Str("scheduler", p.config.Name).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("task panicked")
			if m := p.config.Metrics; m != nil {
				m.SchedulerPanics.WithLabelValues(p.config.Name).Inc()
			}
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(r)
			}
		}

		p.activeWorkers.Dec()
		p.totalCompleted.Inc()
		if m := p.config.Metrics; m != nil {
			m.SchedulerTasks.WithLabelValues(p.config.Name).Inc()
			m.SchedulerTaskDuration.WithLabelValues(p.config.Name).Observe(time.Since(start).Seconds())
		}
	}()

	t.fn()
}
