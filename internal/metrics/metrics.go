package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SamplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "samples_total", Help: "Count of signal samples generated"},
		[]string{"signal", "status"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_total", Help: "Alerts emitted by rules"},
		[]string{"signal", "rule"},
	)
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "ws_clients", Help: "Connected live-stream websocket clients"},
	)
)

func init() {
	prometheus.MustRegister(SamplesTotal, AlertsTotal, WSClients)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
