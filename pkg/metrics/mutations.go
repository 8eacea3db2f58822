package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// MutationMetrics counts state mutations by entity and outcome.
type MutationMetrics struct {
	applied *prometheus.CounterVec
	noop    *prometheus.CounterVec
	failed  *prometheus.CounterVec
}

// NewMutationMetrics registers the mutation counters on the provided registerer.
func NewMutationMetrics(reg prometheus.Registerer) *MutationMetrics {
	if reg == nil {
		return &MutationMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mutations_applied",
		Help: "State mutations that changed an entity.",
	}, []string{"entity"})
	noop := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mutations_noop",
		Help: "State mutations that left the entity unchanged.",
	}, []string{"entity", "reason"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "state_mutations_failed",
		Help: "State mutations whose write-through failed.",
	}, []string{"entity"})
	reg.MustRegister(applied, noop, failed)
	return &MutationMetrics{
		applied: applied,
		noop:    noop,
		failed:  failed,
	}
}

// IncApplied increments the applied counter for the named entity.
func (m *MutationMetrics) IncApplied(entity string) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncNoop increments the no-op counter with the skip reason.
func (m *MutationMetrics) IncNoop(entity, reason string) {
	if m == nil || m.noop == nil {
		return
	}
	m.noop.WithLabelValues(normalizeLabel(entity), normalizeLabel(reason)).Inc()
}

// IncFailed increments the failure counter for the named entity.
func (m *MutationMetrics) IncFailed(entity string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(entity)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
