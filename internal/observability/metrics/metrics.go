package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the conversational booking
// engine.
type BookingMetrics struct {
	flowsStarted   *prometheus.CounterVec
	flowsCompleted *prometheus.CounterVec
	flowsAbandoned *prometheus.CounterVec
	turnsRejected  *prometheus.CounterVec
	persistLatency prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		flowsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatforge",
			Subsystem: "booking",
			Name:      "flows_started_total",
			Help:      "Total booking conversations started",
		}, []string{"bot_id"}),
		flowsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatforge",
			Subsystem: "booking",
			Name:      "flows_completed_total",
			Help:      "Total booking conversations that persisted an appointment",
		}, []string{"bot_id"}),
		flowsAbandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatforge",
			Subsystem: "booking",
			Name:      "flows_abandoned_total",
			Help:      "Total booking conversations abandoned",
		}, []string{"bot_id", "reason"}),
		turnsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatforge",
			Subsystem: "booking",
			Name:      "turns_rejected_total",
			Help:      "Total user turns rejected by field validation",
		}, []string{"field", "reason"}),
		persistLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chatforge",
			Subsystem: "booking",
			Name:      "persist_latency_seconds",
			Help:      "Latency of appointment persistence on the final turn",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.flowsStarted, m.flowsCompleted, m.flowsAbandoned, m.turnsRejected, m.persistLatency)
	return m
}

func (m *BookingMetrics) ObserveFlowStarted(botID string) {
	if m == nil {
		return
	}
	m.flowsStarted.WithLabelValues(botID).Inc()
}

func (m *BookingMetrics) ObserveFlowCompleted(botID string) {
	if m == nil {
		return
	}
	m.flowsCompleted.WithLabelValues(botID).Inc()
}

func (m *BookingMetrics) ObserveFlowAbandoned(botID, reason string) {
	if m == nil {
		return
	}
	m.flowsAbandoned.WithLabelValues(botID, reason).Inc()
}

func (m *BookingMetrics) ObserveTurnRejected(field, reason string) {
	if m == nil {
		return
	}
	m.turnsRejected.WithLabelValues(field, reason).Inc()
}

func (m *BookingMetrics) ObservePersistLatency(seconds float64) {
	if m == nil {
		return
	}
	m.persistLatency.Observe(seconds)
}
