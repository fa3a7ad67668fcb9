package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the bundle recommend HTTP handlers
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundler_recommend_latency_seconds",
		Help:    "Latency of bundle recommendation handlers",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundler_recommend_requests_total",
		Help: "Total number of bundle recommend requests",
	})

	// How many candidates fell back to the deterministic template
	EnrichmentFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundler_enrichment_fallbacks_total",
		Help: "Candidates served with templated copy after an enrichment failure",
	})

	// Candidates rewritten by the AI provider
	EnrichmentSuccesses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundler_enrichment_successes_total",
		Help: "Candidates served with AI-generated copy",
	})

	// Bundles persisted through any save path
	BundlesSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundler_bundles_saved_total",
		Help: "Total number of bundles persisted",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		EnrichmentFallbacks,
		EnrichmentSuccesses,
		BundlesSaved,
	)
}
