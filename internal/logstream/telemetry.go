package logstream

import "github.com/prometheus/client_golang/prometheus"

// Channel self-instrumentation.
var (
	linesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taloswatch_log_lines_total",
			Help: "Total log lines received over the stream, by severity.",
		},
		[]string{"severity"},
	)
	reconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taloswatch_log_reconnects_total",
			Help: "Total times the log stream connection closed and re-entered the reconnect loop.",
		},
	)
)

func init() {
	prometheus.MustRegister(linesTotal)
	prometheus.MustRegister(reconnectsTotal)
}
