// Package scheduler provides execution contexts for observable pipelines.
//
// A Scheduler accepts a task and runs it somewhere: inline (Immediate), on a
// fresh goroutine (NewGoroutine), on a fixed worker pool (NewPool), on an
// elastic pool sized for blocking I/O (NewElastic), or on a single-threaded
// event loop owned by the caller (NewLoop).
//
// Every Schedule call returns a Disposable; disposing it before the task
// starts prevents the task from running. Pool and Elastic reject work with
// an error wrapping errors.ErrShutdown once they are stopped.
//
// Pools are created from a PoolConfig:
//
//	pool, err := scheduler.NewPool(scheduler.PoolConfig{
//		Name:    "compute",
//		Workers: runtime.NumCPU(),
//		Logger:  logger,
//	})
//	if err != nil {
//		return err
//	}
//	defer func() { <-pool.Shutdown() }()
//
// The Loop is the decoupled replacement for a UI main thread: callbacks
// observed on it run one at a time on the goroutine that calls Run.
//
//	loop := scheduler.NewLoop()
//	go produce(loop)
//	err := loop.Run(ctx)
package scheduler
