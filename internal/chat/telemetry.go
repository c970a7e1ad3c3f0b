package chat

import "github.com/prometheus/client_golang/prometheus"

var messagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "taloswatch_chat_messages_total",
		Help: "Total chat exchanges, by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(messagesTotal)
}
