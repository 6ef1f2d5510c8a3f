// Package observable implements push-based event streams.
//
// An Observable produces events for each Subscribe call: zero or more
// OnNext followed by at most one OnError or OnComplete. Subscribe returns a
// Disposable; disposing it, or cancelling the context passed to Subscribe,
// stops delivery and releases upstream resources such as timers and
// goroutines. After Dispose returns no new callback begins, though one
// already running on another goroutine may finish.
//
// # Sources
//
// Just, FromSlice, Range, Empty, Never, Fail, Defer and FromChannel build
// streams from values. Timer, Interval and Cron are driven by a clock,
// replaceable with WithClock for tests:
//
//	mock := clock.NewMock()
//	ticks := observable.Interval(time.Second, observable.WithClock(mock))
//
// # Operators
//
// Operators are plain functions that take the upstream Observable as their
// first argument:
//
//	taps := observable.Buffer(clicks, 3*time.Second)
//	counts := observable.Map(taps, func(b []Click) int { return len(b) })
//	busy := observable.Filter(counts, func(n int) bool { return n > 0 })
//
// Map, Filter and the other function-taking operators convert a panic in the
// user function into OnError with an *errors.OperatorError.
//
// FlatMap, ConcatMap and SwitchMap differ only in how inner streams are
// subscribed: all at once, one after the other, or only the latest.
// Merge and Concat are their fixed-list counterparts.
//
// # Concurrency
//
// Time-based operators fire on timer goroutines and combining operators
// receive events from several producers at once. Each subscription funnels
// its events through its own serializer, so downstream callbacks for one
// subscription never overlap. SubscribeOn and ObserveOn move production and
// delivery onto a scheduler.Scheduler.
//
// # Sharing
//
// Subject multicasts events pushed into it; NewReplaySubject also replays
// them to late subscribers. Publish and Replay wrap a cold source so that
// several subscribers share one upstream subscription, started by Connect:
//
//	tickets := observable.Replay(searchTickets(from, to))
//	tickets.Subscribe(ctx, list)
//	observable.FlatMap(tickets, lookupPrices).Subscribe(ctx, prices)
//	conn := tickets.Connect(ctx)
//	defer conn.Dispose()
//
// # Blocking
//
// ToSlice, Last, First and ForEach subscribe and block until the stream
// terminates or the context is done:
//
//	users, err := observable.ToSlice(ctx, observable.Concat(males, females))
package observable
