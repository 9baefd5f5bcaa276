package uuid256

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewPrometheusMetrics tests creating Prometheus metrics
func TestNewPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	if metrics.GetRegistry() != registry {
		t.Error("registry not set correctly")
	}

	for _, name := range []string{
		MetricIDsGenerated,
		MetricGeneratorErrors,
		MetricCounterWraps,
		MetricNodeAllocated,
		MetricNodeErrors,
	} {
		if _, ok := metrics.counters[name]; !ok {
			t.Errorf("counter %s not registered", name)
		}
	}
	if _, ok := metrics.gauges[MetricNodeValue]; !ok {
		t.Errorf("gauge %s not registered", MetricNodeValue)
	}
}

func TestPrometheusMetricsIncrement(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())

	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Increment(MetricIDsGenerated, "version", "0")
	metrics.Increment(MetricCounterWraps)

	ids := metrics.counters[MetricIDsGenerated]
	if got := testutil.ToFloat64(ids.WithLabelValues("1")); got != 2 {
		t.Errorf("v1 ids = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ids.WithLabelValues("0")); got != 1 {
		t.Errorf("v0 ids = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.counters[MetricCounterWraps].WithLabelValues()); got != 1 {
		t.Errorf("wraps = %v, want 1", got)
	}
}

func TestPrometheusMetricsExposition(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Gauge(MetricNodeValue, 42)

	expected := `
# HELP uuid256_ids_generated_total Total number of identifiers generated
# TYPE uuid256_ids_generated_total counter
uuid256_ids_generated_total{version="1"} 1
# HELP uuid256_node_value Node id fixed by the v1 generator
# TYPE uuid256_node_value gauge
uuid256_node_value 42
`
	err := testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"uuid256_ids_generated_total", "uuid256_node_value")
	if err != nil {
		t.Error(err)
	}
}

func TestPrometheusMetricsDynamic(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.Increment("uuid256.custom.events", "kind", "a")
	metrics.Gauge("custom-gauge", 3)
	metrics.Timing("lease.duration", 20*time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"uuid256_custom_events",
		"uuid256_custom_gauge",
		"uuid256_lease_duration",
	} {
		if !names[want] {
			t.Errorf("metric %s not found in %v", want, names)
		}
	}
}

func TestPrometheusMetricsWithGenerator(t *testing.T) {
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())
	node := uint32(5)
	g, err := NewGenerator(GeneratorConfig{Node: &node}, nil, metrics)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := g.NextV1(nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.NextV0(); err != nil {
		t.Fatal(err)
	}

	ids := metrics.counters[MetricIDsGenerated]
	if got := testutil.ToFloat64(ids.WithLabelValues("1")); got != 3 {
		t.Errorf("v1 ids = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.gauges[MetricNodeValue].WithLabelValues()); got != 5 {
		t.Errorf("node gauge = %v, want 5", got)
	}
}

func TestMetricIdent(t *testing.T) {
	tests := map[string]string{
		"uuid256.ids.generated": "ids_generated",
		"custom-gauge":          "custom_gauge",
		"plain":                 "plain",
	}
	for in, want := range tests {
		if got := metricIdent(in); got != want {
			t.Errorf("metricIdent(%q) = %q, want %q", in, got, want)
		}
	}
}
