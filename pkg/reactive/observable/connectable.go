package observable

import (
	"context"
	"sync"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Connectable shares a single upstream subscription among all of its
// subscribers. Subscribe only attaches to the shared stream; nothing is
// requested from the upstream until Connect is called.
type Connectable[T any] struct {
	name       string
	src        Observable[T]
	newSubject func() *Subject[T]

	mu      sync.Mutex
	subject *Subject[T]
	conn    *connection
}

// Publish returns a Connectable whose subscribers see only the items
// emitted after they subscribe.
func Publish[T any](src Observable[T]) *Connectable[T] {
	return newConnectable("publish", src, NewSubject[T])
}

// Replay returns a Connectable that replays every item of the current
// connection to late subscribers, including after the upstream terminated.
func Replay[T any](src Observable[T]) *Connectable[T] {
	return newConnectable("replay", src, NewReplaySubject[T])
}

func newConnectable[T any](name string, src Observable[T], newSubject func() *Subject[T]) *Connectable[T] {
	return &Connectable[T]{
		name:       name,
		src:        src,
		newSubject: newSubject,
		subject:    newSubject(),
	}
}

func (c *Connectable[T]) Subscribe(ctx context.Context, o Observer[T]) disposable.Disposable {
	c.mu.Lock()
	subject := c.subject
	c.mu.Unlock()
	return subject.Subscribe(ctx, o)
}

// Connect subscribes to the upstream and returns the connection. While
// that connection is live, further calls return it unchanged. Disposing it,
// or cancelling ctx, stops the upstream; current subscribers then receive
// no further events. Once the connection has ended, the next Connect starts
// a fresh run with a fresh history for the subscribers that follow.
func (c *Connectable[T]) Connect(ctx context.Context) disposable.Disposable {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.conn != nil && !c.conn.IsDisposed() {
		conn := c.conn
		c.mu.Unlock()
		return conn
	}
	if c.conn != nil {
		c.subject = c.newSubject()
	}
	subject := c.subject
	runCtx, cancel := context.WithCancel(ctx)
	conn := &connection{ctx: runCtx, cancel: cancel}
	c.conn = conn
	c.mu.Unlock()

	if c.src == nil {
		subject.OnError(nilObservable(c.name))
		conn.Dispose()
		return conn
	}
	c.src.Subscribe(runCtx, ObserverFuncs[T]{
		Next: subject.OnNext,
		Error: func(err error) {
			subject.OnError(err)
			conn.Dispose()
		},
		Complete: func() {
			subject.OnComplete()
			conn.Dispose()
		},
	})
	return conn
}

// connection is live until its context is cancelled.
type connection struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (c *connection) Dispose() {
	c.cancel()
}

func (c *connection) IsDisposed() bool {
	return c.ctx.Err() != nil
}
