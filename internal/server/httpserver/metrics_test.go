package httpserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue returns the value of the counter series matching labels, or
// -1 when absent.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func TestMetrics_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest(http.MethodGet, "/api/hello", http.StatusOK, 5*time.Millisecond)
	m.RecordRequest(http.MethodGet, "/api/hello", http.StatusOK, 7*time.Millisecond)

	got := counterValue(t, reg, "brewhaven_http_requests_total",
		map[string]string{"method": "GET", "route": "/api/hello", "status_code": "200"})
	if got != 2 {
		t.Errorf("http_requests_total = %v, want 2", got)
	}
}

func TestMetrics_RouterRecordsRoutePattern(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, httptest.NewRequest(http.MethodGet, "/api/hello", nil))
	env.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if got := counterValue(t, env.reg, "brewhaven_http_requests_total",
		map[string]string{"route": "/api/hello", "status_code": "200"}); got != 1 {
		t.Errorf("hello requests = %v, want 1", got)
	}
	if got := counterValue(t, env.reg, "brewhaven_http_requests_total",
		map[string]string{"status_code": "404"}); got != 1 {
		t.Errorf("404 requests = %v, want 1", got)
	}
}

func TestMetrics_Endpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "brewhaven_http_requests_total") {
		t.Errorf("exposition missing request counter:\n%s", body)
	}
}
