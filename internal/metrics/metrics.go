// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// キャッシュ層とAPIクライアントから利用する。
type MetricsCollector interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordFixtureFetch(outcome string)
	RecordFixtureFetchLatency(duration time.Duration)
	RecordBackendRequest(operation string, statusCode int)
	RecordBackendLatency(duration time.Duration)
}

// フィクスチャー取得の結果ラベル。
const (
	// FetchOutcomeRemote はリモートAPIからの取得成功。
	FetchOutcomeRemote = "remote"
	// FetchOutcomeFallback はサンプルデータへのフォールバック。
	FetchOutcomeFallback = "fallback"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	cacheHit       prometheus.Counter
	cacheMiss      prometheus.Counter
	fixtureFetch   *prometheus.CounterVec
	fetchLatency   prometheus.Histogram
	backendReqs    *prometheus.CounterVec
	backendLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticketgate_match_cache_hit_total",
			Help: "試合キャッシュヒットの合計数",
		}),
		cacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticketgate_match_cache_miss_total",
			Help: "試合キャッシュミス（鮮度切れ・未保存・バージョン不一致）の合計数",
		}),
		fixtureFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketgate_fixture_fetch_total",
			Help: "フィクスチャー取得の結果別合計数",
		}, []string{"outcome"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticketgate_fixture_fetch_latency_seconds",
			Help:    "フィクスチャーAPI取得のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		backendReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketgate_backend_request_total",
			Help: "チケッティングAPIリクエストの操作・ステータス別合計数",
		}, []string{"operation", "status_code"}),
		backendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticketgate_backend_request_latency_seconds",
			Help:    "チケッティングAPIリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.cacheHit,
		c.cacheMiss,
		c.fixtureFetch,
		c.fetchLatency,
		c.backendReqs,
		c.backendLatency,
	)

	return c
}

// RecordCacheHit はキャッシュヒットを記録する。
func (c *Collector) RecordCacheHit() {
	c.cacheHit.Inc()
}

// RecordCacheMiss はキャッシュミスを記録する。
func (c *Collector) RecordCacheMiss() {
	c.cacheMiss.Inc()
}

// RecordFixtureFetch はフィクスチャー取得の結果を記録する。
func (c *Collector) RecordFixtureFetch(outcome string) {
	c.fixtureFetch.WithLabelValues(outcome).Inc()
}

// RecordFixtureFetchLatency はフィクスチャー取得のレイテンシを記録する。
func (c *Collector) RecordFixtureFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

// RecordBackendRequest はチケッティングAPIリクエストの結果を記録する。
func (c *Collector) RecordBackendRequest(operation string, statusCode int) {
	c.backendReqs.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
}

// RecordBackendLatency はチケッティングAPIリクエストのレイテンシを記録する。
func (c *Collector) RecordBackendLatency(duration time.Duration) {
	c.backendLatency.Observe(duration.Seconds())
}

// NopCollector は何も記録しないMetricsCollector実装。
// メトリクスを無効化した構成とテストで使用する。
type NopCollector struct{}

func (NopCollector) RecordCacheHit()                                 {}
func (NopCollector) RecordCacheMiss()                                {}
func (NopCollector) RecordFixtureFetch(outcome string)               {}
func (NopCollector) RecordFixtureFetchLatency(d time.Duration)       {}
func (NopCollector) RecordBackendRequest(operation string, code int) {}
func (NopCollector) RecordBackendLatency(d time.Duration)            {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewDebugRouter はデバッグ用リスナーのルーターを構築する。
// /metrics でPrometheusスクレイプ、/healthz で生存確認に応答する。
func NewDebugRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", Handler(gatherer))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}
