// Package ticketing はリモートのチケッティング/認証APIのクライアントを提供する。
// バックエンドは不透明な協調者であり、このパッケージはHTTP呼び出しと
// ペイロードの変換のみを担う。
package ticketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/ticketgate/internal/metrics"
	"github.com/hitoshi/ticketgate/internal/model"
)

// TokenSource はbearerトークンの供給元のインターフェース。
// 通常はsession.Storeが実装する。
type TokenSource interface {
	Token() string
}

// Client はチケッティングAPIのクライアント。
// 認証が必要な呼び出しにはTokenSourceから取得したbearerトークンを付与する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    metrics.MetricsCollector
	tokens     TokenSource
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
// collectorがnilの場合はメトリクスを記録しない。
func NewClient(
	baseURL string,
	tokens TokenSource,
	logger *slog.Logger,
	collector metrics.MetricsCollector,
	timeout time.Duration,
) *Client {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    collector,
		tokens:     tokens,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// authResponse はログイン/サインアップのレスポンス。
type authResponse struct {
	JWT string `json:"jwt"`
}

// SignupRequest はアカウント登録の入力。
type SignupRequest struct {
	FirstName string `json:"f_name"`
	LastName  string `json:"l_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	Birthdate string `json:"birthdate,omitempty"` // ISO-8601
}

// ProfileUpdateRequest はプロフィール更新の入力。
// バックエンドは全フィールドを受け取り、置き換え後のユーザーを返す。
type ProfileUpdateRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	Birthdate   string
	Nationality string
}

// Login はメールアドレスとパスワードをbearerトークンに交換する。
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	data, status, err := c.do(ctx, http.MethodPost, "/auth/login", "application/json", bytes.NewReader(body), false, "login")
	if err != nil {
		return "", model.NewLoginFailedError(err.Error())
	}
	if status != http.StatusOK {
		return "", model.NewLoginFailedError(fmt.Sprintf("status %d", status))
	}

	var auth authResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		return "", model.NewLoginFailedError("unexpected response format")
	}
	if auth.JWT == "" {
		return "", model.NewLoginFailedError("empty token in response")
	}
	return auth.JWT, nil
}

// Signup は新規アカウントを登録し、発行されたbearerトークンを返す。
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal signup request: %w", err)
	}

	data, status, err := c.do(ctx, http.MethodPost, "/auth/signup", "application/json", bytes.NewReader(body), false, "signup")
	if err != nil {
		return "", model.NewSignupFailedError(err.Error())
	}
	if status < 200 || status >= 300 {
		return "", model.NewSignupFailedError(fmt.Sprintf("status %d", status))
	}

	var auth authResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		return "", model.NewSignupFailedError("unexpected response format")
	}
	if auth.JWT == "" {
		return "", model.NewSignupFailedError("empty token in response")
	}
	return auth.JWT, nil
}

// Profile はログイン中ユーザーのプロフィールを取得する。
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	data, status, err := c.do(ctx, http.MethodGet, "/api/users/profile", "", nil, true, "profile")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed with status %d", status)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &u, nil
}

// UpdateProfile はプロフィールを更新する。imageが非nilの場合は
// プロフィール画像もmultipartで同時にアップロードする。
// 置き換え後のユーザーを返す。フィールドのマージは呼び出し側の責務。
func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest, image io.Reader, imageName string) (*model.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"f_name":      req.FirstName,
		"l_name":      req.LastName,
		"email":       req.Email,
		"password":    req.Password,
		"phone":       req.Phone,
		"birthdate":   req.Birthdate,
		"nationality": req.Nationality,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write multipart field %s: %w", name, err)
		}
	}

	if image != nil {
		part, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image); err != nil {
			return nil, fmt.Errorf("failed to copy image data: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	data, status, err := c.do(ctx, http.MethodPut, "/api/users/profile", mw.FormDataContentType(), &buf, true, "update_profile")
	if err != nil {
		return nil, model.NewProfileUpdateError(err.Error())
	}
	if status < 200 || status >= 300 {
		return nil, model.NewProfileUpdateError(fmt.Sprintf("status %d", status))
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, model.NewProfileUpdateError("unexpected response format")
	}
	return &u, nil
}

// UploadImage は画像をアップロードする（顔写真の品質確認フロー用）。
func (c *Client) UploadImage(ctx context.Context, name string, r io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	_, status, err := c.do(ctx, http.MethodPost, "/api/images", mw.FormDataContentType(), &buf, true, "upload_image")
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("image upload failed with status %d", status)
	}
	return nil
}

// CreateTicket はチケットを作成し購入を確定する。
// バックエンドの契約に合わせてフォームエンコードでPOSTする。
func (c *Client) CreateTicket(ctx context.Context, order model.TicketOrder) (*model.Ticket, error) {
	params := url.Values{}
	params.Set("homeTeamName", order.HomeTeamName)
	params.Set("awayTeamName", order.AwayTeamName)
	params.Set("matchDate", order.MatchDate)
	params.Set("seatNumber", strconv.Itoa(order.SeatNumber))
	params.Set("VenueName", order.VenueName)
	params.Set("VenueCity", order.VenueCity)
	params.Set("cardType", strings.ToUpper(order.CardType))
	params.Set("cardNumber", order.CardNumber)
	params.Set("cardHolderName", order.CardHolderName)
	params.Set("expirationDate", order.ExpirationDate)
	params.Set("cvvCode", order.CVVCode)

	data, status, err := c.do(ctx, http.MethodPost, "/api/tickets",
		"application/x-www-form-urlencoded", strings.NewReader(params.Encode()), true, "create_ticket")
	if err != nil {
		return nil, model.NewPurchaseFailedError(err.Error())
	}
	if status < 200 || status >= 300 {
		// バックエンドのエラーメッセージをそのまま診断に回す
		c.logger.Error("チケット作成がエラーステータスを返しました",
			slog.Int("http_status", status),
			slog.String("body", string(data)),
		)
		return nil, model.NewPurchaseFailedError(fmt.Sprintf("status %d", status))
	}

	var t model.Ticket
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, model.NewPurchaseFailedError("unexpected response format")
	}
	return &t, nil
}

// Ticket は指定IDのチケットを取得する。
func (c *Client) Ticket(ctx context.Context, ticketID string) (*model.Ticket, error) {
	data, status, err := c.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(ticketID), "", nil, true, "get_ticket")
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, model.NewTicketNotFoundError(ticketID)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ticket fetch failed with status %d", status)
	}

	var t model.Ticket
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse ticket response: %w", err)
	}
	return &t, nil
}

// Tickets はログイン中ユーザーの全チケットを取得する。
func (c *Client) Tickets(ctx context.Context) ([]model.Ticket, error) {
	data, status, err := c.do(ctx, http.MethodGet, "/api/tickets", "", nil, true, "list_tickets")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ticket list fetch failed with status %d", status)
	}

	var ts []model.Ticket
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("failed to parse ticket list response: %w", err)
	}
	return ts, nil
}

// do はHTTPリクエストを実行し、レスポンスボディとステータスを返す。
// authedがtrueの場合はbearerトークンを必須とし、未保持なら送信せずエラーを返す。
// 書き込み系の追跡用にX-Request-IDを常に付与する。
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, authed bool, operation string) ([]byte, int, error) {
	var token string
	if authed {
		token = c.tokens.Token()
		if token == "" {
			return nil, 0, model.NewTokenMissingError()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordBackendLatency(time.Since(start))
	if err != nil {
		c.logger.Error("チケッティングAPIの呼び出しに失敗しました",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return nil, 0, err
	}
	defer resp.Body.Close()

	c.metrics.RecordBackendRequest(operation, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, resp.StatusCode, nil
}
