package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValid は保持中のトークンが指定時刻に有効かを返す。
// 署名検証はバックエンドの責務なのでここでは行わず、exp claimのみを見る。
// トークン未保持、パース不能、期限切れのいずれもfalse。
// exp claimを持たないトークンは有効として扱う（バックエンドが無期限トークンを
// 発行する構成を許容する）。
func (s *Store) TokenValid(now time.Time) bool {
	if s.token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
