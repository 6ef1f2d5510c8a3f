// Package metrics provides Prometheus instrumentation for rxflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for rxflow components.
type Registry struct {
	// Subscription Metrics
	SubscriptionsActive *prometheus.GaugeVec
	ItemsEmitted        *prometheus.CounterVec
	Errors              *prometheus.CounterVec
	Completions         *prometheus.CounterVec
	Disposals           *prometheus.CounterVec

	// Scheduler Metrics
	SchedulerTasks        *prometheus.CounterVec
	SchedulerPanics       *prometheus.CounterVec
	SchedulerTaskDuration *prometheus.HistogramVec
	SchedulerQueued       *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registerer: reg})
}

// NewRegistryWithConfig creates a registry honouring the namespace and
// constant labels of cfg.
func NewRegistryWithConfig(cfg Config) *Registry {
	factory := promauto.With(cfg.Registerer)
	ns := cfg.namespace()

	return &Registry{
		SubscriptionsActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "observable",
				Name:        "subscriptions_active",
				Help:        "Number of live subscriptions",
				ConstLabels: cfg.Labels,
			},
			[]string{"name"},
		),

		ItemsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "observable",
				Name:        "items_total",
				Help:        "Total number of items delivered to subscribers",
				ConstLabels: cfg.Labels,
			},
			[]string{"name"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "observable",
				Name:        "errors_total",
				Help:        "Total number of subscriptions terminated by an error",
				ConstLabels: cfg.Labels,
			},
			[]string{"name"},
		),

		Completions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "observable",
				Name:        "completions_total",
				Help:        "Total number of subscriptions that completed",
				ConstLabels: cfg.Labels,
			},
			[]string{"name"},
		),

		Disposals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "observable",
				Name:        "subscriptions_ended_total",
				Help:        "Total number of subscriptions that ended for any reason",
				ConstLabels: cfg.Labels,
			},
			[]string{"name"},
		),

		SchedulerTasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "scheduler",
				Name:        "tasks_executed_total",
				Help:        "Total number of tasks executed",
				ConstLabels: cfg.Labels,
			},
			[]string{"scheduler"},
		),

		SchedulerPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "scheduler",
				Name:        "task_panics_total",
				Help:        "Total number of tasks that panicked",
				ConstLabels: cfg.Labels,
			},
			[]string{"scheduler"},
		),

		SchedulerTaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "scheduler",
				Name:        "task_duration_seconds",
				Help:        "Time spent executing tasks",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: cfg.Labels,
			},
			[]string{"scheduler"},
		),

		SchedulerQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "scheduler",
				Name:        "queued_tasks",
				Help:        "Number of tasks waiting for a worker",
				ConstLabels: cfg.Labels,
			},
			[]string{"scheduler"},
		),
	}
}
