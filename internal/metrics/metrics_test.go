package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv := Serve(":0")
	defer srv.Close()

	GatewayRequests.WithLabelValues("CreateUnsignedTransaction", "ok").Inc()
	StatusPolls.WithLabelValues("terminal").Inc()

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range mfs {
		found[mf.GetName()] = true
	}
	if !found["gateway_requests_total"] {
		t.Fatalf("gateway_requests_total metric not found")
	}
	if !found["trade_status_polls_total"] {
		t.Fatalf("trade_status_polls_total metric not found")
	}
}
