package observable

import (
	"github.com/cenkalti/backoff/v4"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Retry resubscribes to src when it fails, waiting for the delay b
// prescribes. When b returns backoff.Stop, or the error is a configuration
// error, the last error is forwarded. Items emitted before a failure are
// not retracted. b is reset at every subscription and must not be shared
// between concurrent subscriptions.
func Retry[T any](src Observable[T], b backoff.BackOff, opts ...Option) Observable[T] {
	if src == nil {
		return Fail[T](nilObservable("retry"))
	}
	o := applyOptions(opts)
	return Create(func(s Subscriber[T]) {
		var (
			current   = &disposable.Holder{}
			timer     = &disposable.Holder{}
			subscribe func()
		)
		s.Add(current)
		s.Add(timer)
		b.Reset()

		subscribe = func() {
			current.Set(src.Subscribe(s.Context(), ObserverFuncs[T]{
				Next: s.OnNext,
				Error: func(err error) {
					if rxerrors.IsTerminalForRetry(err) {
						s.OnError(err)
						return
					}
					wait := b.NextBackOff()
					if wait == backoff.Stop {
						s.OnError(err)
						return
					}
					o.logger.Debug().Err(err).Dur("wait", wait).Msg("retrying subscription")
					timer.Set(stopOnDispose(o.clock.AfterFunc(wait, subscribe)))
				},
				Complete: s.OnComplete,
			}))
		}
		subscribe()
	})
}
