package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// コンパイル時のインターフェース充足確認。
var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = NopCollector{}
)

// scrape はレジストリの内容をテキスト形式で取得する。
func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read scrape body: %v", err)
	}
	return string(body)
}

func TestCollector_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCacheHit()
	c.RecordCacheHit()
	c.RecordCacheMiss()
	c.RecordFixtureFetch(FetchOutcomeRemote)
	c.RecordFixtureFetch(FetchOutcomeFallback)
	c.RecordFixtureFetchLatency(150 * time.Millisecond)
	c.RecordBackendRequest("create_ticket", 201)
	c.RecordBackendLatency(80 * time.Millisecond)

	body := scrape(t, reg)

	checks := []string{
		"ticketgate_match_cache_hit_total 2",
		"ticketgate_match_cache_miss_total 1",
		`ticketgate_fixture_fetch_total{outcome="remote"} 1`,
		`ticketgate_fixture_fetch_total{outcome="fallback"} 1`,
		`ticketgate_backend_request_total{operation="create_ticket",status_code="201"} 1`,
	}
	for _, want := range checks {
		if !strings.Contains(body, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}

func TestNewDebugRouter_ServesMetricsAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	srv := httptest.NewServer(NewDebugRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "ticketgate_match_cache_hit_total") {
		t.Error("expected registered metrics in /metrics output")
	}
}
