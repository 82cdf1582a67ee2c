package mlt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mlt_proposals_total",
		Help: "Mutation proposals by strategy and outcome",
	}, []string{"strategy", "outcome"})

	seedAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mlt_seed_attempts_total",
		Help: "Primary sample vectors drawn while seeding chains",
	})
)

// Publish adds the counters to the process metrics. Per-render values such as the
// longest rejection run stay in ChainStats.
func (s *ChainStats) Publish() {
	for i := 0; i < NumStrategies; i++ {
		name := Strategy(i).String()
		rejected := s.Proposed[i] - s.Failed[i] - s.Accepted[i]
		proposalsTotal.WithLabelValues(name, "accepted").Add(float64(s.Accepted[i]))
		proposalsTotal.WithLabelValues(name, "rejected").Add(float64(rejected))
		proposalsTotal.WithLabelValues(name, "failed").Add(float64(s.Failed[i]))
	}
	seedAttemptsTotal.Add(float64(s.SeedAttempts))
}
