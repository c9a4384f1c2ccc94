// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はサードパーティAPIから受け取ったテキストの
// サニタイズ機能のインターフェース。チーム名、リーグ名、会場名など
// 表示に使う文字列をキャッシュへの保存前に通す。
type TextSanitizerService interface {
	// SanitizeText は入力からすべてのマークアップを除去し、
	// HTMLエンティティを復号したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。冪等。
	SanitizeText(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのStrictPolicy（全タグ除去）を使用する。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// SanitizeText は入力からマークアップを除去したプレーンテキストを返す。
// bluemondayはタグ除去後のテキストをHTMLエスケープして返すため、
// 表示用の素のテキストに戻してから空白を整える。
func (s *textSanitizer) SanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
