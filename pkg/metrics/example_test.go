package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	reg := prometheus.NewRegistry()
	registry := NewRegistry(reg)

	registry.SubscriptionsActive.WithLabelValues("taps").Inc()
	registry.ItemsEmitted.WithLabelValues("taps").Add(3)

	fmt.Printf("active: %v\n", testutil.ToFloat64(registry.SubscriptionsActive.WithLabelValues("taps")))
	fmt.Printf("items: %v\n", testutil.ToFloat64(registry.ItemsEmitted.WithLabelValues("taps")))

	// Output:
	// active: 1
	// items: 3
}

// Example_customNamespace demonstrates overriding the namespace and adding
// constant labels.
func Example_customNamespace() {
	reg := prometheus.NewRegistry()
	registry := NewRegistryWithConfig(Config{
		Registerer: reg,
		Namespace:  "demo",
		Labels:     prometheus.Labels{"version": "1.0"},
	})

	registry.SchedulerTasks.WithLabelValues("io").Inc()

	families, err := reg.Gather()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, mf := range families {
		fmt.Println(mf.GetName())
	}

	// Output:
	// demo_scheduler_tasks_executed_total
}
