// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Ticketing API（リモートバックエンド）
	TicketAPIURL string

	// Fixtures API（サードパーティ）
	FixturesAPIURL    string
	FixturesAPIKey    string
	FixturesRateLimit int // 1分あたりの最大リクエスト数

	// Cache
	CacheTTL time.Duration

	// HTTP
	HTTPTimeout time.Duration

	// ローカル状態（localStorage相当）の保存先ディレクトリ
	StateDir string

	// Metrics（空文字の場合はリスナーを起動しない）
	MetricsAddr string
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあれば先に読み込む（存在しなくてもエラーにしない）。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	// .envは開発用の上書き手段。本番では環境変数を直接設定する。
	_ = godotenv.Load()

	cfg := &Config{}

	var missing []string

	cfg.TicketAPIURL = os.Getenv("TICKET_API_URL")
	if cfg.TicketAPIURL == "" {
		missing = append(missing, "TICKET_API_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.FixturesAPIURL = getEnvString("FIXTURES_API_URL", "https://v3.football.api-sports.io")
	cfg.FixturesAPIKey = getEnvString("FIXTURES_API_KEY", "")
	cfg.FixturesRateLimit = getEnvInt("FIXTURES_RATE_LIMIT", 10)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", 24*time.Hour)
	cfg.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	cfg.StateDir = getEnvString("STATE_DIR", defaultStateDir())
	cfg.MetricsAddr = getEnvString("METRICS_ADDR", "")

	return cfg, nil
}

// defaultStateDir はローカル状態の既定の保存先を返す。
// ホームディレクトリが特定できない場合はカレントディレクトリ配下を使う。
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ticketgate"
	}
	return filepath.Join(home, ".ticketgate")
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
