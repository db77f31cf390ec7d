package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of matching requests",
		},
		[]string{"status"},
	)

	matchingScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_scores",
			Help:    "Distribution of total match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		},
	)

	candidateCounts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_count",
			Help:    "Number of candidates surviving hard filters per request",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
	)

	retrievalFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_retrieval_fallback_total",
			Help: "Times the joined retrieval failed structurally and the degraded path ran",
		},
	)

	historyWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_history_write_failures_total",
			Help: "Best-effort history snapshot writes that failed",
		},
	)

	serviceTypePassthroughs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_service_type_passthrough_total",
			Help: "Service-type inputs that matched no synonym and passed through unchanged",
		},
	)
)

func RecordRequest(status string) {
	matchingRequestsTotal.WithLabelValues(status).Inc()
}

func RecordScore(score float64) {
	matchingScores.Observe(score)
}

func RecordCandidateCount(n int) {
	candidateCounts.Observe(float64(n))
}

func RecordRetrievalFallback() {
	retrievalFallbacks.Inc()
}

func RecordHistoryWriteFailure() {
	historyWriteFailures.Inc()
}

func RecordServiceTypePassthrough() {
	serviceTypePassthroughs.Inc()
}
