package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPMetricsMiddleware instruments requests with Prometheus metrics. The
// path label uses the mux route pattern when one matched, so parameterized
// routes (and /ws/mood-feed query noise) stay a single series instead of one
// per raw URL.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		ObserveHTTPRequest(r.Method, routeLabel(r), strconv.Itoa(ww.status), time.Since(start))
	})
}

// routeLabel prefers the matched mux pattern, stripped of its method prefix;
// unmatched requests (404s) fall back to the raw path.
func routeLabel(r *http.Request) string {
	pattern := r.Pattern
	if pattern == "" {
		return r.URL.Path
	}
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = pattern[i+1:]
	}
	return pattern
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
