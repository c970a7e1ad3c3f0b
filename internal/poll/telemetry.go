package poll

import "github.com/prometheus/client_golang/prometheus"

// failuresTotal counts swallowed poll failures per task. The tasks never
// surface these; the counter is the only place they accumulate.
var failuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "taloswatch_poll_failures_total",
		Help: "Total failed poll cycles, by task.",
	},
	[]string{"task"},
)

func init() {
	prometheus.MustRegister(failuresTotal)
}
