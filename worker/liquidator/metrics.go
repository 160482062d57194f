package liquidator

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics
)

type metrics struct {
	cycles       *prometheus.CounterVec
	liquidations prometheus.Counter
	duration     prometheus.Histogram
}

func newMetrics() *metrics {
	metricsOnce.Do(func() {
		m := &metrics{
			cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "keeper_liquidator_cycles_total",
				Help: "Liquidation cycles by result.",
			}, []string{"result"}),
			liquidations: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "keeper_liquidator_liquidations_total",
				Help: "Liquidation actions submitted.",
			}),
			duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "keeper_liquidator_cycle_seconds",
				Help:    "Duration of a liquidation cycle.",
				Buckets: prometheus.DefBuckets,
			}),
		}
		prometheus.MustRegister(m.cycles, m.liquidations, m.duration)
		sharedMetrics = m
	})
	return sharedMetrics
}
