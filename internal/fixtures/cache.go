package fixtures

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hitoshi/ticketgate/internal/metrics"
	"github.com/hitoshi/ticketgate/internal/model"
	"github.com/hitoshi/ticketgate/internal/storage"
)

// envelopeVersion は永続化エンベロープのスキーマバージョン。
// 形式を変えるときはこの値を上げる。バージョン不一致の保存データは
// 鮮度切れと同じ扱いで再取得される（誤パースの黙殺を防ぐ）。
const envelopeVersion = 1

// cacheEnvelope は試合キャッシュの永続化形式。
// ペイロードと取得時刻とバージョンを1つのblobにまとめる。
type cacheEnvelope struct {
	Version   int                 `json:"version"`
	FetchedAt time.Time           `json:"fetched_at"`
	Data      model.MatchResponse `json:"data"`
}

// MatchFetcher は試合データのリモート取得のインターフェース。
// テスト時にモックに差し替え可能。
type MatchFetcher interface {
	FetchAll(ctx context.Context) (*model.MatchResponse, error)
}

// Cache は試合データのローカルキャッシュ。
// 鮮度窓（既定24時間）の範囲では保存済みスナップショットを返し、
// 窓を過ぎたら1回だけリモート取得を試みる。リモートが失敗または空の
// 場合は決定的なサンプルデータにフォールバックし、それをキャッシュとして
// 保存する。フォールバックも保存することで、障害が続いても再試行は
// 鮮度窓あたり1回に抑えられる。
// このキャッシュからエラーが呼び出し元に伝播することはない。
type Cache struct {
	kv      storage.KVStore
	fetcher MatchFetcher
	logger  *slog.Logger
	metrics metrics.MetricsCollector
	ttl     time.Duration

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time
}

// NewCache はCacheの新しいインスタンスを生成する。
func NewCache(
	kv storage.KVStore,
	fetcher MatchFetcher,
	logger *slog.Logger,
	collector metrics.MetricsCollector,
	ttl time.Duration,
) *Cache {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	return &Cache{
		kv:      kv,
		fetcher: fetcher,
		logger:  logger,
		metrics: collector,
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetAll は全試合のスナップショットを返す。
// 鮮度内の保存データがあればそれを、なければリモート取得またはサンプルデータを返す。
// どの経路でも必ず非nilのスライスを返し、エラーを返さない。
func (c *Cache) GetAll(ctx context.Context) []model.Match {
	if env, ok := c.loadFresh(); ok {
		c.metrics.RecordCacheHit()
		return env.Data.Response
	}
	c.metrics.RecordCacheMiss()
	return c.refresh(ctx)
}

// GetByID は指定IDの試合を返す。見つからない場合はnilを返す。
// 保存済みスナップショットがない・古い場合は内部で取得経路を通るため、
// 事前にGetAllを呼んでおく必要はない。
func (c *Cache) GetByID(ctx context.Context, matchID int) *model.Match {
	for _, m := range c.GetAll(ctx) {
		if m.Fixture.ID == matchID {
			return &m
		}
	}
	return nil
}

// GetByLeague は指定リーグの試合をスナップショットの順序のまま返す。
// 該当なしの場合は空スライスを返す。
func (c *Cache) GetByLeague(ctx context.Context, leagueID int) []model.Match {
	var out []model.Match
	for _, m := range c.GetAll(ctx) {
		if m.League.ID == leagueID {
			out = append(out, m)
		}
	}
	return out
}

// loadFresh は鮮度内の保存エンベロープを読み込む。
// 未保存、パース不能、バージョン不一致、鮮度切れはすべて(zero, false)。
func (c *Cache) loadFresh() (cacheEnvelope, bool) {
	var env cacheEnvelope

	data, ok, err := c.kv.Get(storage.KeyMatchData)
	if err != nil {
		c.logger.Error("試合キャッシュの読み込みに失敗しました",
			slog.String("error", err.Error()),
		)
		return env, false
	}
	if !ok {
		return env, false
	}

	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Warn("試合キャッシュのパースに失敗したため破棄します",
			slog.String("error", err.Error()),
		)
		return env, false
	}
	if env.Version != envelopeVersion {
		c.logger.Info("試合キャッシュのバージョンが一致しないため再取得します",
			slog.Int("stored_version", env.Version),
			slog.Int("expected_version", envelopeVersion),
		)
		return env, false
	}
	if c.now().Sub(env.FetchedAt) >= c.ttl {
		return env, false
	}
	return env, true
}

// refresh はリモート取得を1回試み、失敗時はサンプルデータに
// フォールバックして、結果をキャッシュとして保存する。
func (c *Cache) refresh(ctx context.Context) []model.Match {
	start := c.now()

	remote, err := c.fetcher.FetchAll(ctx)
	c.metrics.RecordFixtureFetchLatency(time.Since(start))

	if err == nil && remote != nil && len(remote.Response) > 0 {
		c.metrics.RecordFixtureFetch(metrics.FetchOutcomeRemote)
		c.logger.Info("フィクスチャーAPIから試合データを取得しました",
			slog.Int("match_count", len(remote.Response)),
		)
		c.persist(*remote)
		return remote.Response
	}

	if err != nil {
		c.logger.Warn("フィクスチャーAPIの取得に失敗したためサンプルデータを使用します",
			slog.String("error", err.Error()),
		)
	} else {
		c.logger.Warn("フィクスチャーAPIのレスポンスが空のためサンプルデータを使用します")
	}

	// フォールバックもキャッシュとして保存する。これにより障害中でも
	// ネットワーク再試行は鮮度窓あたり1回に制限される。
	c.metrics.RecordFixtureFetch(metrics.FetchOutcomeFallback)
	sample := SampleMatches()
	c.persist(sample)
	return sample.Response
}

// persist はペイロードを現在時刻のエンベロープで保存する。
// 保存失敗はログのみで呼び出し元には影響しない（次回またミス扱いになるだけ）。
func (c *Cache) persist(data model.MatchResponse) {
	env := cacheEnvelope{
		Version:   envelopeVersion,
		FetchedAt: c.now(),
		Data:      data,
	}
	blob, err := json.Marshal(env)
	if err != nil {
		c.logger.Error("試合キャッシュのシリアライズに失敗しました",
			slog.String("error", err.Error()),
		)
		return
	}
	if err := c.kv.Set(storage.KeyMatchData, blob); err != nil {
		c.logger.Error("試合キャッシュの保存に失敗しました",
			slog.String("error", err.Error()),
		)
	}
}
