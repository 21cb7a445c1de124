package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveFlowStarted("bot-1")
	m.ObserveFlowCompleted("bot-1")
	m.ObserveFlowAbandoned("bot-1", "persistence_error")
	m.ObserveTurnRejected("email", "malformed_email")
	m.ObservePersistLatency(0.25)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	want := map[string]bool{
		"chatforge_booking_flows_started_total":   false,
		"chatforge_booking_flows_completed_total": false,
		"chatforge_booking_flows_abandoned_total": false,
		"chatforge_booking_turns_rejected_total":  false,
		"chatforge_booking_persist_latency_seconds": false,
	}
	for _, fam := range families {
		if _, ok := want[fam.GetName()]; ok {
			want[fam.GetName()] = true
			if fam.GetType() == dto.MetricType_COUNTER && fam.GetMetric()[0].GetCounter().GetValue() != 1 {
				t.Errorf("%s: expected counter value 1, got %v", fam.GetName(), fam.GetMetric()[0].GetCounter().GetValue())
			}
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric family %s not registered", name)
		}
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveFlowStarted("bot-1")
	m.ObserveFlowCompleted("bot-1")
	m.ObserveFlowAbandoned("bot-1", "persistence_error")
	m.ObserveTurnRejected("time", "out_of_hours")
	m.ObservePersistLatency(0.1)
}
