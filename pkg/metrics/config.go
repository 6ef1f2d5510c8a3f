package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless Config.Namespace is set.
const DefaultNamespace = "rxflow"

// Config holds configuration for metrics collection.
type Config struct {
	// Registerer receives every collector. Required; there is no fallback
	// to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// Namespace overrides the default "rxflow" namespace for metrics.
	Namespace string

	// Labels are constant labels added to all metrics.
	Labels prometheus.Labels
}

func (c Config) namespace() string {
	if c.Namespace == "" {
		return DefaultNamespace
	}
	return c.Namespace
}
