package gateway

import "github.com/prometheus/client_golang/prometheus"

// Gateway self-instrumentation.
var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taloswatch_gateway_requests_total",
			Help: "Total authenticated requests issued through the gateway.",
		},
		[]string{"method"},
	)
	authRepromptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taloswatch_auth_reprompts_total",
			Help: "Total interactive credential reprompts triggered by 401 responses.",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(authRepromptsTotal)
}
