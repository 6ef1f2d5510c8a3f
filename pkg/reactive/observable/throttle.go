package observable

import (
	"golang.org/x/time/rate"

	rxerrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// Throttle forwards items no faster than limiter admits them. The producer
// blocks in OnNext until a token is available, so a synchronous source is
// slowed down rather than buffered.
func Throttle[T any](src Observable[T], limiter *rate.Limiter) Observable[T] {
	if limiter == nil {
		return Fail[T](rxerrors.NewValidationError("observable", "limiter", nil, "cannot be nil"))
	}
	return lift("throttle", src, func(s Subscriber[T]) Observer[T] {
		return ObserverFuncs[T]{
			Next: func(v T) {
				if err := limiter.Wait(s.Context()); err != nil {
					if s.Context().Err() == nil {
						s.OnError(rxerrors.NewOperatorError("throttle", err))
					}
					return
				}
				s.OnNext(v)
			},
			Error:    s.OnError,
			Complete: s.OnComplete,
		}
	})
}
