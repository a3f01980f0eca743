package ask

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeTimeout     = "timeout"
	outcomeUpstream    = "upstream"
	outcomeMalformed   = "malformed"
	outcomeError       = "error"
)

var (
	requestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_coach",
		Subsystem: "ask",
		Name:      "requests_total",
		Help:      "Number of /ask requests grouped by outcome.",
	}, []string{"outcome"})

	upstreamDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitness_coach",
		Subsystem: "ask",
		Name:      "upstream_duration_seconds",
		Help:      "Latency of the outbound chat completion call.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})
)

func init() {
	prometheus.MustRegister(requestsCounter, upstreamDuration)
}

func recordOutcome(outcome string) {
	requestsCounter.WithLabelValues(outcome).Inc()
}
