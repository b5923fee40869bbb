package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodtunes_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moodtunes_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	emotionAnalyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodtunes_emotion_analyses_total",
		Help: "Count of emotion analyses by detected label",
	}, []string{"emotion"})

	recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodtunes_recommendations_total",
		Help: "Count of recommendation lookups by requested label and fallback use",
	}, []string{"emotion", "fallback"})

	playlistsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moodtunes_playlists_saved_total",
		Help: "Count of saved playlists",
	})

	sessionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodtunes_sessions_issued_total",
		Help: "Count of sessions issued by source",
	}, []string{"source"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAnalysis increments the analysis counter for a detected emotion
func ObserveAnalysis(emotion string) {
	emotionAnalyses.WithLabelValues(emotion).Inc()
}

// ObserveRecommendation records a recommendation lookup
func ObserveRecommendation(emotion string, fallback bool) {
	label := "false"
	if fallback {
		label = "true"
	}
	recommendations.WithLabelValues(emotion, label).Inc()
}

// ObservePlaylistSaved increments the saved-playlist counter
func ObservePlaylistSaved() {
	playlistsSaved.Inc()
}

// ObserveSessionIssued records a session issued at login or registration
func ObserveSessionIssued(source string) {
	sessionsIssued.WithLabelValues(source).Inc()
}
