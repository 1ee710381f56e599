package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tier names reported for id-based mutations
const (
	TierID    = "id"
	TierEmail = "email"
)

// Metrics tracks calls to the remote document store and id-based mutation fallbacks
type Metrics struct {
	RemoteRequests  *prometheus.CounterVec
	RemoteDuration  *prometheus.HistogramVec
	MutationOutcome *prometheus.CounterVec
}

// New creates Metrics registered in reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RemoteRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_remote_requests_total",
			Help: "Total number of requests sent to the remote document store",
		}, []string{"method", "status"}),
		RemoteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clientes_remote_request_duration_seconds",
			Help:    "Duration of requests sent to the remote document store",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		MutationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_id_mutation_outcomes_total",
			Help: "Outcomes of update/delete by id, per fallback tier",
		}, []string{"operation", "tier", "outcome"}),
	}
}

// ObserveRemote records a finished remote call, status 0 means transport failure.
// Call with time.Now() at the start of the call.
func (m *Metrics) ObserveRemote(method string, status int, start time.Time) {
	if m == nil {
		return
	}

	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.RemoteRequests.WithLabelValues(method, label).Inc()
	m.RemoteDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// ObserveMutation records outcome of a single fallback tier
func (m *Metrics) ObserveMutation(operation, tier, outcome string) {
	if m == nil {
		return
	}
	m.MutationOutcome.WithLabelValues(operation, tier, outcome).Inc()
}
