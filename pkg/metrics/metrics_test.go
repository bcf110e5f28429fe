package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestEntityMetricsCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEntityMetrics(reg)

	m.IncSuccess("wishlist", "cascade_delete")
	m.IncSuccess("wishlist", "cascade_delete")
	m.IncFailure("product", "create")
	m.IncSuccess("", "")

	if got := counterValue(t, reg, "entity_mutation_success", "wishlist", "cascade_delete"); got != 2 {
		t.Fatalf("expected 2 cascade_delete successes, got %v", got)
	}
	if got := counterValue(t, reg, "entity_mutation_failure", "product", "create"); got != 1 {
		t.Fatalf("expected 1 create failure, got %v", got)
	}
	if got := counterValue(t, reg, "entity_mutation_success", "unknown", "unknown"); got != 1 {
		t.Fatalf("expected empty labels to normalize to unknown, got %v", got)
	}
}

func TestEntityMetricsNilSafe(t *testing.T) {
	noop := NewEntityMetrics(nil)
	noop.IncSuccess("wishlist", "create")
	noop.IncFailure("wishlist", "create")

	var nilMetrics *EntityMetrics
	nilMetrics.IncSuccess("wishlist", "create")
	nilMetrics.IncFailure("wishlist", "create")
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, entity, operation string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric.GetLabel(), entity, operation) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(labels []*dto.LabelPair, entity, operation string) bool {
	var gotEntity, gotOperation string
	for _, label := range labels {
		switch label.GetName() {
		case "entity":
			gotEntity = label.GetValue()
		case "operation":
			gotOperation = label.GetValue()
		}
	}
	return gotEntity == entity && gotOperation == operation
}
