package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestsLabeledByRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(HTTPMetricsMiddleware(mux))
	defer server.Close()

	for _, id := range []string{"1", "2", "3"} {
		resp, err := http.Get(server.URL + "/items/" + id)
		if err != nil {
			t.Fatalf("GET /items/%s: %v", id, err)
		}
		resp.Body.Close()
	}

	// Three distinct URLs collapse into one series keyed by the pattern
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/{id}", "200"))
	if got != 3 {
		t.Fatalf("pattern series count = %v, want 3", got)
	}
}

func TestUnmatchedRequestsKeepRawPath(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(HTTPMetricsMiddleware(mux))
	defer server.Close()

	resp, err := http.Get(server.URL + "/no-such-route")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/no-such-route", "404"))
	if got != 1 {
		t.Fatalf("raw-path series count = %v, want 1", got)
	}
}

func TestStatusWriterRecordsExplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &statusWriter{ResponseWriter: rec, status: http.StatusOK}
	ww.WriteHeader(http.StatusTeapot)

	if ww.status != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", ww.status, http.StatusTeapot)
	}
	if rec.Code != http.StatusTeapot {
		t.Fatalf("recorded code = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
