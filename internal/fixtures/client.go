package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hitoshi/ticketgate/internal/model"
	"github.com/hitoshi/ticketgate/internal/security"
)

// queryLeagueIDs は一括取得の対象リーグID。
// 主要5リーグに加えてUEFAの2大会を含む。
var queryLeagueIDs = []int{
	39,  // Premier League
	140, // La Liga
	135, // Serie A
	78,  // Bundesliga
	61,  // Ligue 1
	2,   // UEFA Champions League
	3,   // UEFA Europa League
}

// upcomingCount は1回の取得で要求する今後の試合数。
const upcomingCount = 20

// ClientConfig はフィクスチャーAPIクライアントの設定。
type ClientConfig struct {
	// BaseURL はAPIのベースURL。
	BaseURL string
	// APIKey はx-apisports-keyヘッダーに載せるAPIキー。
	APIKey string
	// Timeout はHTTPリクエストのタイムアウト。
	Timeout time.Duration
	// RequestsPerMinute はAPI無料枠を守るためのレート上限。
	RequestsPerMinute int
}

// Client はサードパーティのフィクスチャーAPIクライアント。
// アウトバウンドガード付きのHTTPクライアントでリクエストし、
// レスポンスの表示用テキストはサニタイズしてから返す。
type Client struct {
	httpClient *http.Client
	guard      security.OutboundGuardService
	sanitizer  security.TextSanitizerService
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	apiKey     string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(
	guard security.OutboundGuardService,
	sanitizer security.TextSanitizerService,
	logger *slog.Logger,
	cfg ClientConfig,
) *Client {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 10
	}
	return &Client{
		httpClient: guard.NewSafeClient(cfg.Timeout),
		guard:      guard,
		sanitizer:  sanitizer,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		logger:     logger,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// FetchAll は対象全リーグの今後の試合を一括取得する。
// 取得失敗時はエラーを返す（フォールバック判断は呼び出し元のキャッシュ層が行う）。
func (c *Client) FetchAll(ctx context.Context) (*model.MatchResponse, error) {
	// APIキー未設定の構成ではネットワークに出ずに失敗させ、
	// キャッシュ層のサンプルデータフォールバックに委ねる
	if c.apiKey == "" {
		return nil, fmt.Errorf("fixtures API key is not configured")
	}

	// 無料枠の保護。上限を超えるペースの呼び出しはここで待たされる。
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	ids := make([]string, len(queryLeagueIDs))
	for i, id := range queryLeagueIDs {
		ids[i] = strconv.Itoa(id)
	}

	reqURL, err := url.Parse(c.baseURL + "/fixtures")
	if err != nil {
		return nil, fmt.Errorf("フィクスチャーAPIのURLのパースに失敗しました: %w", err)
	}
	q := reqURL.Query()
	q.Set("league", strings.Join(ids, "-"))
	q.Set("season", "2023")
	q.Set("next", strconv.Itoa(upcomingCount))
	reqURL.RawQuery = q.Encode()

	// アウトバウンド先の事前検証。構成ミスでプライベートアドレスに
	// 向いている場合はここで弾く。
	if err := c.guard.ValidateURL(reqURL.String()); err != nil {
		return nil, fmt.Errorf("フィクスチャーAPIのURL検証に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("フィクスチャーAPIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("フィクスチャーAPIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, fmt.Errorf("フィクスチャーAPIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result model.MatchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("フィクスチャーAPIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	c.sanitizeResponse(&result)
	return &result, nil
}

// sanitizeResponse は表示に使うテキストフィールドからマークアップを除去する。
// サードパーティ由来の文字列はキャッシュ保存前に必ずここを通す。
func (c *Client) sanitizeResponse(r *model.MatchResponse) {
	for i := range r.Response {
		m := &r.Response[i]
		m.Teams.Home.Name = c.sanitizer.SanitizeText(m.Teams.Home.Name)
		m.Teams.Away.Name = c.sanitizer.SanitizeText(m.Teams.Away.Name)
		m.League.Name = c.sanitizer.SanitizeText(m.League.Name)
		m.League.Country = c.sanitizer.SanitizeText(m.League.Country)
		m.Fixture.Referee = c.sanitizer.SanitizeText(m.Fixture.Referee)
		if m.Fixture.Venue != nil {
			m.Fixture.Venue.Name = c.sanitizer.SanitizeText(m.Fixture.Venue.Name)
			m.Fixture.Venue.City = c.sanitizer.SanitizeText(m.Fixture.Venue.City)
		}
	}
}
