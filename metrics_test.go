package uuid256

import (
	"sync"
	"testing"
	"time"
)

func TestNoOpMetrics(t *testing.T) {
	metrics := &NoOpMetrics{}

	// All calls should be safe (no panics, no output)
	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Gauge(MetricNodeValue, 42.0)
	metrics.Histogram("test.histogram", 100.5)
	metrics.Timing("test.timing", 5*time.Millisecond)
}

func TestInMemoryMetrics(t *testing.T) {
	metrics := NewInMemoryMetrics()

	metrics.Increment(MetricIDsGenerated, "version", "0")
	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Increment(MetricIDsGenerated, "version", "1")
	metrics.Increment(MetricCounterWraps)

	// tags are ignored
	if metrics.Counter(MetricIDsGenerated) != 3 {
		t.Errorf("ids counter = %d, want 3", metrics.Counter(MetricIDsGenerated))
	}
	if metrics.Counter(MetricCounterWraps) != 1 {
		t.Errorf("wraps counter = %d, want 1", metrics.Counter(MetricCounterWraps))
	}
	if metrics.Counter("never.incremented") != 0 {
		t.Error("unknown counter should read 0")
	}

	metrics.Gauge(MetricNodeValue, 7)
	metrics.Gauge(MetricNodeValue, 9)
	if metrics.Gauges[MetricNodeValue] != 9 {
		t.Errorf("node gauge = %f, want 9", metrics.Gauges[MetricNodeValue])
	}

	metrics.Histogram("latency", 1.5)
	metrics.Histogram("latency", 2.5)
	if len(metrics.Histograms["latency"]) != 2 {
		t.Errorf("histogram samples = %d, want 2", len(metrics.Histograms["latency"]))
	}

	metrics.Timing("lease", 3*time.Millisecond)
	if got := metrics.Timings["lease"]; len(got) != 1 || got[0] != 3*time.Millisecond {
		t.Errorf("timings = %v", got)
	}
}

func TestInMemoryMetricsConcurrent(t *testing.T) {
	metrics := NewInMemoryMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				metrics.Increment(MetricIDsGenerated)
			}
		}()
	}
	wg.Wait()

	if metrics.Counter(MetricIDsGenerated) != 1000 {
		t.Errorf("counter = %d, want 1000", metrics.Counter(MetricIDsGenerated))
	}
}

func TestMetricsInterface(t *testing.T) {
	var _ Metrics = &NoOpMetrics{}
	var _ Metrics = &InMemoryMetrics{}
	var _ Metrics = &PrometheusMetrics{}
}
