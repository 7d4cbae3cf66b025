package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a get-or-create request.
const (
	OutcomeHit               = "hit"
	OutcomeCreated           = "created"
	OutcomeLookupFailed      = "lookup_failed"
	OutcomeFetchFailed       = "fetch_failed"
	OutcomeCompositionFailed = "composition_failed"
	OutcomeUploadFailed      = "upload_failed"
)

// Results of a source poster download.
const (
	SourceCached     = "cached"
	SourceDownloaded = "downloaded"
	SourceFailed     = "failed"
)

var (
	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rated_posters",
		Name:      "cache_requests_total",
		Help:      "Get-or-create requests by terminal outcome.",
	}, []string{"outcome"})
	SourceDownloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rated_posters",
		Name:      "source_downloads_total",
		Help:      "Source poster fetches by result.",
	}, []string{"result"})
	ComposeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rated_posters",
		Name:      "compose_duration_seconds",
		Help:      "Time spent compositing a rated poster.",
		Buckets:   prometheus.DefBuckets,
	})
	SweptPosters = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rated_posters",
		Name:      "swept_posters_total",
		Help:      "Expired posters removed from the local cache.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(CacheRequests, SourceDownloads, ComposeDuration, SweptPosters)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
