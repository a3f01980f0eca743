package health

import "github.com/prometheus/client_golang/prometheus"

var updatesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitness_coach",
	Subsystem: "health",
	Name:      "updates_total",
	Help:      "Number of health metric field writes grouped by field.",
}, []string{"field"})

func init() {
	prometheus.MustRegister(updatesCounter)
}

func recordField(field string) {
	updatesCounter.WithLabelValues(field).Inc()
}

func recordUpdate(u Update) {
	if u.Steps != nil {
		recordField("steps")
	}
	if u.StepsGoal != nil {
		recordField("stepsGoal")
	}
	if u.HeartRate != nil {
		recordField("heartRate")
	}
	if u.SleepHours != nil {
		recordField("sleepHours")
	}
	if u.ActiveMinutes != nil {
		recordField("activeMinutes")
	}
}
