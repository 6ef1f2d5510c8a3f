package observable

import (
	"github.com/vnykmshr/rxflow/pkg/metrics"
	"github.com/vnykmshr/rxflow/pkg/reactive/disposable"
)

// Instrument records subscription, item and terminal counts for src under
// name. A nil registry returns src unchanged.
func Instrument[T any](src Observable[T], name string, reg *metrics.Registry) Observable[T] {
	if reg == nil {
		return src
	}
	if src == nil {
		return Fail[T](nilObservable("instrument"))
	}
	var (
		active      = reg.SubscriptionsActive.WithLabelValues(name)
		items       = reg.ItemsEmitted.WithLabelValues(name)
		errs        = reg.Errors.WithLabelValues(name)
		completions = reg.Completions.WithLabelValues(name)
		ended       = reg.Disposals.WithLabelValues(name)
	)
	return Create(func(s Subscriber[T]) {
		active.Inc()
		s.Add(disposable.New(func() {
			active.Dec()
			ended.Inc()
		}))
		s.Add(src.Subscribe(s.Context(), ObserverFuncs[T]{
			Next: func(v T) {
				items.Inc()
				s.OnNext(v)
			},
			Error: func(err error) {
				errs.Inc()
				s.OnError(err)
			},
			Complete: func() {
				completions.Inc()
				s.OnComplete()
			},
		}))
	})
}
