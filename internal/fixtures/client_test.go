package fixtures

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/ticketgate/internal/security"
)

// --- モック ---

// passthroughGuard はテスト用のアウトバウンドガード。
// httptestサーバーはループバックで動くため、本物のガードは使えない。
type passthroughGuard struct{}

func (passthroughGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (passthroughGuard) ValidateURL(rawURL string) error {
	return nil
}

var _ security.OutboundGuardService = passthroughGuard{}

// newTestClient はhttptestサーバーに向けたClientを生成する。
func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()
	return NewClient(passthroughGuard{}, security.NewTextSanitizer(), discardLogger(), ClientConfig{
		BaseURL:           baseURL,
		APIKey:            apiKey,
		Timeout:           5 * time.Second,
		RequestsPerMinute: 600, // テストがレート制限で待たされないように
	})
}

// --- テスト ---

func TestFetchAll_SendsKeyAndQuery(t *testing.T) {
	var gotPath, gotKey, gotLeague, gotSeason, gotNext string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-apisports-key")
		q := r.URL.Query()
		gotLeague = q.Get("league")
		gotSeason = q.Get("season")
		gotNext = q.Get("next")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":[{"fixture":{"id":1,"date":"2024-05-01T18:00:00Z","status":{"long":"Not Started","short":"NS"}},"league":{"id":39,"name":"Premier League","country":"England","logo":""},"teams":{"home":{"name":"Arsenal","logo":""},"away":{"name":"Chelsea","logo":""}},"goals":{"home":null,"away":null}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "test-key")
	resp, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	if gotPath != "/fixtures" {
		t.Errorf("path = %q, want /fixtures", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-apisports-key = %q, want test-key", gotKey)
	}
	if gotLeague != "39-140-135-78-61-2-3" {
		t.Errorf("league = %q, want 39-140-135-78-61-2-3", gotLeague)
	}
	if gotSeason != "2023" {
		t.Errorf("season = %q, want 2023", gotSeason)
	}
	if gotNext != "20" {
		t.Errorf("next = %q, want 20", gotNext)
	}

	if len(resp.Response) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Response))
	}
	if resp.Response[0].Teams.Home.Name != "Arsenal" {
		t.Errorf("home team = %q, want Arsenal", resp.Response[0].Teams.Home.Name)
	}
	if resp.Response[0].Goals.Home != nil {
		t.Error("expected nil home goals for unstarted match")
	}
}

func TestFetchAll_SanitizesThirdPartyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":[{"fixture":{"id":1,"date":"2024-05-01T18:00:00Z","status":{"long":"NS","short":"NS"},"venue":{"name":"<script>x</script>Emirates","city":"London"}},"league":{"id":39,"name":"<b>Premier</b> League","country":"England","logo":""},"teams":{"home":{"name":"Arsenal &amp; Co","logo":""},"away":{"name":"Chelsea","logo":""}},"goals":{"home":null,"away":null}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	resp, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	m := resp.Response[0]
	if m.League.Name != "Premier League" {
		t.Errorf("league name = %q, want markup stripped", m.League.Name)
	}
	if m.Teams.Home.Name != "Arsenal & Co" {
		t.Errorf("home team = %q, want entities decoded", m.Teams.Home.Name)
	}
	if m.Fixture.Venue == nil || m.Fixture.Venue.Name != "Emirates" {
		t.Errorf("venue = %+v, want script tag stripped", m.Fixture.Venue)
	}
}

func TestFetchAll_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchAll_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestFetchAll_MissingAPIKey(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error when API key is not configured")
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0 (must not hit the network without a key)", requests)
	}
}

func TestFetchAll_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "k")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.FetchAll(ctx); err == nil {
		t.Fatal("expected error when context is cancelled")
	}
}
