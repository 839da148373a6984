// Package metrics exports Prometheus collectors for native engine calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	nativeCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voicevox",
			Subsystem: "core",
			Name:      "native_calls_total",
			Help:      "Total number of calls into the native engine",
		},
		[]string{"func", "result"},
	)

	nativeCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "voicevox",
			Subsystem: "core",
			Name:      "native_call_duration_seconds",
			Help:      "Duration of calls into the native engine in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"func"},
	)
)

func init() {
	prometheus.MustRegister(nativeCallsTotal, nativeCallDuration)
}

// Recorder feeds native call outcomes into the package collectors. The zero
// value is ready to use; it satisfies voicevox.Observer.
type Recorder struct{}

// ObserveCall records one native call.
func (Recorder) ObserveCall(fn string, ok bool, d time.Duration) {
	result := "ok"
	if !ok {
		result = "fail"
	}
	nativeCallsTotal.WithLabelValues(fn, result).Inc()
	nativeCallDuration.WithLabelValues(fn).Observe(d.Seconds())
}
