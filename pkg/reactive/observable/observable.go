package observable

import (
	"context"
	"fmt"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Observer receives the events of one subscription: any number of OnNext
// calls followed by at most one OnError or OnComplete.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// ObserverFuncs adapts plain functions to an Observer. Nil fields ignore
// their event.
type ObserverFuncs[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

func (o ObserverFuncs[T]) OnNext(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o ObserverFuncs[T]) OnError(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o ObserverFuncs[T]) OnComplete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Subscriber is the producer's side of a subscription. It forwards events
// to the downstream Observer, drops anything after a terminal event or after
// disposal, and owns the resources the producer registers with Add.
type Subscriber[T any] interface {
	Observer[T]
	disposable.Disposable

	// Context is cancelled when the subscription ends for any reason.
	Context() context.Context

	// Add registers a resource released when the subscription ends. If it
	// already ended, d is disposed immediately and Add returns false.
	Add(d disposable.Disposable) bool

	// Remove unregisters d without disposing it.
	Remove(d disposable.Disposable) bool
}

// Observable is a cold source of events. Every Subscribe call starts an
// independent execution; cancelling ctx disposes the subscription.
type Observable[T any] interface {
	Subscribe(ctx context.Context, o Observer[T]) disposable.Disposable
}

// OnSubscribe produces events for a single subscription.
type OnSubscribe[T any] func(s Subscriber[T])

type createObservable[T any] struct {
	onSubscribe OnSubscribe[T]
}

// Create returns an Observable that runs fn on the subscribing goroutine for
// each subscription. A panic in fn is delivered as OnError with an
// *errors.OperatorError.
func Create[T any](fn OnSubscribe[T]) Observable[T] {
	return &createObservable[T]{onSubscribe: fn}
}

func (c *createObservable[T]) Subscribe(ctx context.Context, o Observer[T]) disposable.Disposable {
	if ctx == nil {
		ctx = context.Background()
	}
	if o == nil {
		o = ObserverFuncs[T]{}
	}

	s := newSubscriber(ctx, o)
	if s.IsDisposed() {
		s.Dispose()
		return s
	}

	defer func() {
		if r := recover(); r != nil {
			s.OnError(rxerrors.Recovered("subscribe", r))
		}
	}()
	c.onSubscribe(s)
	return s
}

// Subscribe is a shorthand for subscribing plain functions.
func Subscribe[T any](ctx context.Context, src Observable[T], next func(T), onError func(error), onComplete func()) disposable.Disposable {
	return src.Subscribe(ctx, ObserverFuncs[T]{Next: next, Error: onError, Complete: onComplete})
}

// lift builds an operator that subscribes to src with an observer derived
// from the downstream subscriber.
func lift[T, R any](name string, src Observable[T], op func(s Subscriber[R]) Observer[T]) Observable[R] {
	if src == nil {
		return Fail[R](nilObservable(name))
	}
	return Create(func(s Subscriber[R]) {
		s.Add(src.Subscribe(s.Context(), op(s)))
	})
}

// try runs f, converting a panic into an *errors.OperatorError.
func try[R any](op string, f func() R) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = rxerrors.Recovered(op, p)
		}
	}()
	return f(), nil
}

func nilObservable(op string) error {
	return fmt.Errorf("%s: %w", op, rxerrors.ErrNilObservable)
}
