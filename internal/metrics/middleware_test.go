package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/public/ai-search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limited") != "" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func TestMiddleware_RecordsByRoutePattern(t *testing.T) {
	r := newTestRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/public/ai-search", "200"))

	req := httptest.NewRequest(http.MethodPost, "/api/public/ai-search", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/public/ai-search", "200"))
	if after-before != 1 {
		t.Errorf("expected one request recorded, got %f", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method, target, path, status string
	}{
		{"POST", "/api/public/ai-search?limited=1", "/api/public/ai-search", "429"},
		{"GET", "/health", "/health", "503"},
		{"GET", "/nope", "unknown", "404"},
	}

	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.path, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total{%s,%s,%s} >= 1, got %f", tc.method, tc.path, tc.status, val)
			}
		})
	}
}

func TestMiddleware_CanceledWithoutResponse(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/public/ai-search", func(http.ResponseWriter, *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/public/ai-search", statusCanceled))
	req := httptest.NewRequest(http.MethodPost, "/api/public/ai-search", http.NoBody).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/public/ai-search", statusCanceled))
	if after-before != 1 {
		t.Errorf("expected one canceled request, got %f", after-before)
	}
	if v := testutil.ToFloat64(httpRequestsInFlight); v != 0 {
		t.Errorf("in flight = %f, want 0", v)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf("normalizePath(\"\") = %q, want unknown", got)
	}
	if got := normalizePath("/health"); got != "/health" {
		t.Errorf("normalizePath(/health) = %q", got)
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	RateLimitRejectedTotal.Inc()
	if v := testutil.ToFloat64(RateLimitRejectedTotal); v < 1 {
		t.Errorf("expected rejected counter >= 1, got %f", v)
	}

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "talentsearch_ratelimit_rejected_total" {
			found = true
		}
	}
	if !found {
		t.Error("talentsearch_ratelimit_rejected_total not registered")
	}
}
