/*
Package rxflow provides reactive streams for Go: cold Observables with
cancellation-aware subscriptions, composable operators and pluggable
schedulers.

Streams (pkg/reactive):
  - observable: sources, transform, flatten, time-window and scheduling operators, Subject
  - aggregate: Max, Min, Sum, Average, Count and Reduce
  - scheduler: Immediate, Goroutine, Pool, Elastic and Loop schedulers
  - disposable: subscription handles, Composite, Holder and Scope

Sources (pkg/sources):
  - redissource: Redis pub/sub as an Observable, and Observable to Redis

Example usage:

	import (
		"github.com/vnykmshr/rxflow/pkg/reactive/aggregate"
		"github.com/vnykmshr/rxflow/pkg/reactive/observable"
	)

	words := observable.Just("rx", "flow", "go")
	lengths := observable.Map(words, func(s string) int { return len(s) })
	longest, err := observable.Last(ctx, aggregate.Max(lengths))
*/
package rxflow
