// Package metrics provides Prometheus instrumentation for rxflow components.
//
// A Registry is always created explicitly against a caller-owned
// prometheus.Registerer; nothing registers itself globally.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewRegistry(reg)
//
//	pool, _ := scheduler.NewPool(scheduler.PoolConfig{Name: "io", Workers: 4, Metrics: m})
//	counted := observable.Instrument(source, "taps", m)
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Available Metrics
//
// Subscription metrics, labelled by name:
//
//   - rxflow_observable_subscriptions_active: Number of live subscriptions
//   - rxflow_observable_items_total: Items delivered to subscribers
//   - rxflow_observable_errors_total: Subscriptions terminated by an error
//   - rxflow_observable_completions_total: Subscriptions that completed
//   - rxflow_observable_subscriptions_ended_total: Subscriptions that ended for any reason
//
// Scheduler metrics, labelled by scheduler:
//
//   - rxflow_scheduler_tasks_executed_total: Tasks executed
//   - rxflow_scheduler_task_panics_total: Tasks that panicked
//   - rxflow_scheduler_task_duration_seconds: Time spent executing tasks
//   - rxflow_scheduler_queued_tasks: Tasks waiting for a worker
//
// Config.Namespace replaces the "rxflow" prefix and Config.Labels adds
// constant labels to every series.
package metrics
