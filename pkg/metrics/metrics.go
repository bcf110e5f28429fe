package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EntityMetrics counts mutation outcomes per entity type. Labels use the
// entity name ("wishlist", "product") and the operation ("create", "update",
// "delete", "cascade_delete", "bulk_delete").
type EntityMetrics struct {
	success *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewEntityMetrics registers the mutation counters on the provided
// registerer. A nil registerer yields a no-op instance.
func NewEntityMetrics(reg prometheus.Registerer) *EntityMetrics {
	if reg == nil {
		return &EntityMetrics{}
	}
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_mutation_success",
		Help: "Successful entity mutations.",
	}, []string{"entity", "operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entity_mutation_failure",
		Help: "Entity mutations rolled back due to storage failure.",
	}, []string{"entity", "operation"})
	reg.MustRegister(success, failure)
	return &EntityMetrics{
		success: success,
		failure: failure,
	}
}

// IncSuccess increments the success counter for the entity/operation pair.
func (m *EntityMetrics) IncSuccess(entity, operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(entity), normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the entity/operation pair.
func (m *EntityMetrics) IncFailure(entity, operation string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(entity), normalizeLabel(operation)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
