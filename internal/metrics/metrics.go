package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gateway_requests_total", Help: "Gateway RPC calls issued"},
		[]string{"op", "outcome"},
	)
	StatusPolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trade_status_polls_total", Help: "Trade status poll attempts"},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(GatewayRequests, StatusPolls)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
