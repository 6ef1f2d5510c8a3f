package observable

import (
	"context"
	"sync"

	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Subject is a hot Observable that is also an Observer: every event it
// receives is multicast to the subscribers present at that moment.
// Subscribers that arrive after termination receive only the terminal
// event. It is safe to call the Observer methods from several goroutines.
type Subject[T any] struct {
	ser serializer

	mu     sync.RWMutex
	subs   []subjectEntry[T]
	nextID uint64
	done   bool
	err    error

	replay  bool
	history []T
}

type subjectEntry[T any] struct {
	id  uint64
	sub Subscriber[T]
}

// NewSubject returns a Subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// NewReplaySubject returns a Subject that records every item and replays
// the whole history to each new subscriber before live items, followed by
// the terminal event if there was one. The history is unbounded.
func NewReplaySubject[T any]() *Subject[T] {
	return &Subject[T]{replay: true}
}

func (p *Subject[T]) Subscribe(ctx context.Context, o Observer[T]) disposable.Disposable {
	if p.replay {
		return Create(p.attachReplay).Subscribe(ctx, o)
	}
	return Create(func(s Subscriber[T]) {
		p.mu.Lock()
		if p.done {
			err := p.err
			p.mu.Unlock()
			if err != nil {
				s.OnError(err)
			} else {
				s.OnComplete()
			}
			return
		}
		id := p.nextID
		p.nextID++
		subs := make([]subjectEntry[T], len(p.subs), len(p.subs)+1)
		copy(subs, p.subs)
		p.subs = append(subs, subjectEntry[T]{id: id, sub: s})
		p.mu.Unlock()

		s.Add(disposable.New(func() { p.remove(id) }))
	}).Subscribe(ctx, o)
}

// attachReplay runs under the serializer so no item is missed or
// delivered twice between the history and the live stream.
func (p *Subject[T]) attachReplay(s Subscriber[T]) {
	p.ser.run(func() {
		if s.IsDisposed() {
			return
		}
		p.mu.Lock()
		history := p.history
		done, err := p.done, p.err
		id := p.nextID
		if !done {
			p.nextID++
			subs := make([]subjectEntry[T], len(p.subs), len(p.subs)+1)
			copy(subs, p.subs)
			p.subs = append(subs, subjectEntry[T]{id: id, sub: s})
		}
		p.mu.Unlock()

		if !done {
			s.Add(disposable.New(func() { p.remove(id) }))
		}
		for _, v := range history {
			s.OnNext(v)
		}
		switch {
		case !done:
		case err != nil:
			s.OnError(err)
		default:
			s.OnComplete()
		}
	})
}

func (p *Subject[T]) remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, e := range p.subs {
		if e.id == id {
			subs := make([]subjectEntry[T], 0, len(p.subs)-1)
			subs = append(subs, p.subs[:i]...)
			p.subs = append(subs, p.subs[i+1:]...)
			return
		}
	}
}

func (p *Subject[T]) snapshot() []subjectEntry[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.subs
}

// OnNext multicasts v to the current subscribers.
func (p *Subject[T]) OnNext(v T) {
	p.ser.run(func() {
		if p.replay {
			p.mu.Lock()
			if p.done {
				p.mu.Unlock()
				return
			}
			p.history = append(p.history, v)
			p.mu.Unlock()
		}
		for _, e := range p.snapshot() {
			e.sub.OnNext(v)
		}
	})
}

// OnError terminates every current and future subscriber with err.
func (p *Subject[T]) OnError(err error) {
	p.ser.run(func() { p.terminate(err) })
}

// OnComplete completes every current and future subscriber.
func (p *Subject[T]) OnComplete() {
	p.ser.run(func() { p.terminate(nil) })
}

func (p *Subject[T]) terminate(err error) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done, p.err = true, err
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	for _, e := range subs {
		if err != nil {
			e.sub.OnError(err)
		} else {
			e.sub.OnComplete()
		}
	}
}

// HasObservers reports whether any subscriber is attached.
func (p *Subject[T]) HasObservers() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs) > 0
}
