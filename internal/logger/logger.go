// Package logger は構造化ログのセットアップを提供する。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format はログ出力形式を表す。
type Format string

const (
	// FormatJSON はJSON構造化ログ出力。サービスとして動かす場合の既定。
	FormatJSON Format = "json"
	// FormatText は人間向けのテキスト出力。対話的なCLI利用を想定している。
	FormatText Format = "text"
)

// Setup は指定形式のslog.Loggerを生成して返す。
// 未知の形式はJSONとして扱う。
func Setup(w io.Writer, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupDefault は指定形式のロガーをグローバルロガーとして設定する。
// writerがnilの場合はos.Stderrに出力する。ログは診断用であり、
// CLIの表示出力（stdout）とは混ざらないようにする。
func SetupDefault(w io.Writer, format Format) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(Setup(w, format))
}
