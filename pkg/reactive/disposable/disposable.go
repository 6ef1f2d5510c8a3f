// Package disposable provides cancellation handles for subscriptions and
// scheduled work.
package disposable

import (
	"io"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
)

// Disposable releases a resource. Dispose is idempotent and safe for
// concurrent use.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

type action struct {
	once     sync.Once
	disposed atomic.Bool
	fn       func()
}

// New returns a Disposable that runs fn exactly once on the first Dispose.
// A nil fn is allowed.
func New(fn func()) Disposable {
	return &action{fn: fn}
}

func (a *action) Dispose() {
	a.once.Do(func() {
		a.disposed.Store(true)
		if a.fn != nil {
			a.fn()
		}
	})
}

func (a *action) IsDisposed() bool {
	return a.disposed.Load()
}

// Empty returns a fresh Disposable that does nothing on disposal.
func Empty() Disposable {
	return New(nil)
}

// Disposed returns a Disposable that is already disposed.
func Disposed() Disposable {
	d := New(nil)
	d.Dispose()
	return d
}

// Composite groups disposables so they can be released together.
// The zero value is ready to use.
type Composite struct {
	mu       sync.Mutex
	members  []Disposable
	disposed atomic.Bool
}

// NewComposite returns a Composite holding ds.
func NewComposite(ds ...Disposable) *Composite {
	c := &Composite{}
	for _, d := range ds {
		c.Add(d)
	}
	return c
}

// Add registers d. If the composite is already disposed, d is disposed
// immediately and Add returns false.
func (c *Composite) Add(d Disposable) bool {
	if d == nil {
		return false
	}
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		d.Dispose()
		return false
	}
	c.members = append(c.members, d)
	c.mu.Unlock()
	return true
}

// Remove unregisters d without disposing it.
func (c *Composite) Remove(d Disposable) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.members {
		if m == d {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return true
		}
	}
	return false
}

// Clear disposes every member but leaves the composite usable.
func (c *Composite) Clear() {
	c.mu.Lock()
	members := c.members
	c.members = nil
	c.mu.Unlock()
	disposeReverse(members)
}

// Dispose disposes every member in reverse order of addition. Later Adds
// dispose their argument immediately.
func (c *Composite) Dispose() {
	c.mu.Lock()
	if c.disposed.Load() {
		c.mu.Unlock()
		return
	}
	c.disposed.Store(true)
	members := c.members
	c.members = nil
	c.mu.Unlock()
	disposeReverse(members)
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	return c.disposed.Load()
}

// Len returns the number of registered members.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

func disposeReverse(ds []Disposable) {
	for i := len(ds) - 1; i >= 0; i-- {
		ds[i].Dispose()
	}
}

// Holder is a slot for a single replaceable Disposable, such as the current
// inner subscription of a switching operator.
type Holder struct {
	mu       sync.Mutex
	current  Disposable
	disposed atomic.Bool
}

// Set stores d and disposes the previous occupant. If the holder is
// already disposed, d is disposed instead.
func (h *Holder) Set(d Disposable) {
	h.mu.Lock()
	if h.disposed.Load() {
		h.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	prev := h.current
	h.current = d
	h.mu.Unlock()
	if prev != nil {
		prev.Dispose()
	}
}

// Get returns the current occupant, or nil.
func (h *Holder) Get() Disposable {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Dispose disposes the occupant and every later Set argument.
func (h *Holder) Dispose() {
	h.mu.Lock()
	if h.disposed.Load() {
		h.mu.Unlock()
		return
	}
	h.disposed.Store(true)
	cur := h.current
	h.current = nil
	h.mu.Unlock()
	if cur != nil {
		cur.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (h *Holder) IsDisposed() bool {
	return h.disposed.Load()
}

// Scope collects resources acquired while a component is active and
// releases all of them on Close, whatever the exit path.
type Scope struct {
	mu     sync.Mutex
	items  []func() error
	closed bool
}

// Add registers d for disposal on Close.
func (s *Scope) Add(d Disposable) {
	s.push(func() error {
		d.Dispose()
		return nil
	})
}

// AddCloser registers c for closing on Close.
func (s *Scope) AddCloser(c io.Closer) {
	s.push(c.Close)
}

func (s *Scope) push(fn func() error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = fn()
		return
	}
	s.items = append(s.items, fn)
	s.mu.Unlock()
}

// Close releases every registered resource in reverse order and returns
// the combined closer errors. Close is idempotent.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	items := s.items
	s.items = nil
	s.mu.Unlock()

	var err error
	for i := len(items) - 1; i >= 0; i-- {
		err = multierr.Append(err, items[i]())
	}
	return err
}
