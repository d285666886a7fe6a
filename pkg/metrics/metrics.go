package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "advisor"

// Resultados usados nos rótulos "outcome"
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
)

var (
	keywordsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keywords_classified_total",
			Help:      "Total of classified keywords by recommendation",
		},
		[]string{"recommendation"},
	)

	analysisRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Total of analysis runs by origin and outcome",
		},
		[]string{"origin", "outcome"},
	)

	providerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total of requests to external providers by endpoint and outcome",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	snapshotCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_total",
			Help:      "Keyword snapshot cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of full keyword analyses",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

var registerOnce sync.Once

// Init registra os coletores no registry padrão. Pode ser chamado mais de uma vez.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			keywordsClassified,
			analysisRuns,
			providerRequests,
			snapshotCache,
			analysisDuration,
		)
	})
}

// Handler expõe as métricas no formato de scrape do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordClassification(recommendation string) {
	keywordsClassified.WithLabelValues(recommendation).Inc()
}

func RecordAnalysisRun(origin, outcome string, duration time.Duration) {
	analysisRuns.WithLabelValues(origin, outcome).Inc()
	if outcome == OutcomeSuccess {
		analysisDuration.Observe(duration.Seconds())
	}
}

func RecordProviderRequest(provider, endpoint string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	providerRequests.WithLabelValues(provider, endpoint, outcome).Inc()
}

func RecordSnapshotCache(hit bool) {
	outcome := OutcomeMiss
	if hit {
		outcome = OutcomeHit
	}
	snapshotCache.WithLabelValues(outcome).Inc()
}
