package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StageDecode = "decode"
	StageStore  = "store"
)

type Metrics struct {
	Messages       *prometheus.CounterVec
	Failures       *prometheus.CounterVec
	MirrorFailures prometheus.Counter
	WriteDuration  prometheus.Histogram
}

// New creates the bridge collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_messages_total",
			Help: "Messages persisted, by record kind.",
		}, []string{"kind"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_message_failures_total",
			Help: "Messages dropped, by the stage that failed.",
		}, []string{"stage"}),
		MirrorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bridge_mirror_failures_total",
			Help: "Persisted records that could not be mirrored to Kafka.",
		}),
		WriteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridge_write_duration_seconds",
			Help:    "Time spent writing one record to the database.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Messages, m.Failures, m.MirrorFailures, m.WriteDuration)
	return m
}
