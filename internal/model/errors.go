// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, fixture, ticket, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeLoginFailed      = "LOGIN_FAILED"
	ErrCodeSignupFailed     = "SIGNUP_FAILED"
	ErrCodeTokenMissing     = "TOKEN_MISSING"
	ErrCodeInvalidCard      = "INVALID_CARD"
	ErrCodeInvalidSeat      = "INVALID_SEAT"
	ErrCodeMatchNotFound    = "MATCH_NOT_FOUND"
	ErrCodeTicketNotFound   = "TICKET_NOT_FOUND"
	ErrCodePurchaseFailed   = "PURCHASE_FAILED"
	ErrCodeFixturesFetch    = "FIXTURES_FETCH_FAILED"
	ErrCodeProfileUpdate    = "PROFILE_UPDATE_FAILED"
	ErrCodeNotLoggedIn      = "NOT_LOGGED_IN"
	ErrCodeDuplicateInCart  = "DUPLICATE_IN_CART"
)

// NewLoginFailedError はログイン失敗エラーを生成する。
func NewLoginFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeLoginFailed,
		Message:  fmt.Sprintf("ログインに失敗しました: %s", reason),
		Category: "auth",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewSignupFailedError はサインアップ失敗エラーを生成する。
func NewSignupFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeSignupFailed,
		Message:  fmt.Sprintf("アカウント登録に失敗しました: %s", reason),
		Category: "auth",
		Action:   "入力内容を確認し、しばらく待ってから再度お試しください。",
	}
}

// NewTokenMissingError は認証トークン未保持エラーを生成する。
func NewTokenMissingError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenMissing,
		Message:  "認証トークンが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewNotLoggedInError は未ログイン状態での操作エラーを生成する。
func NewNotLoggedInError() *APIError {
	return &APIError{
		Code:     ErrCodeNotLoggedIn,
		Message:  "この操作にはログインが必要です。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}

// NewInvalidCardError はカード入力の検証エラーを生成する。
func NewInvalidCardError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCard,
		Message:  fmt.Sprintf("カード情報が不正です: %s", field),
		Category: "validation",
		Action:   "カード番号、有効期限、CVVの形式を確認してください。",
	}
}

// NewInvalidSeatError は座席番号の検証エラーを生成する。
func NewInvalidSeatError(seat string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSeat,
		Message:  fmt.Sprintf("無効な座席番号です: %s", seat),
		Category: "validation",
		Action:   "座席番号には1以上の整数を指定してください。",
	}
}

// NewMatchNotFoundError は試合未検出エラーを生成する。
func NewMatchNotFoundError(matchID int) *APIError {
	return &APIError{
		Code:     ErrCodeMatchNotFound,
		Message:  fmt.Sprintf("指定された試合が見つかりません: %d", matchID),
		Category: "fixture",
		Action:   "試合一覧を再取得してから試合IDを確認してください。",
	}
}

// NewTicketNotFoundError はチケット未検出エラーを生成する。
func NewTicketNotFoundError(ticketID string) *APIError {
	return &APIError{
		Code:     ErrCodeTicketNotFound,
		Message:  fmt.Sprintf("指定されたチケットが見つかりません: %s", ticketID),
		Category: "ticket",
		Action:   "チケットIDを確認してください。",
	}
}

// NewPurchaseFailedError は購入処理失敗エラーを生成する。
func NewPurchaseFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodePurchaseFailed,
		Message:  fmt.Sprintf("チケットの購入に失敗しました: %s", reason),
		Category: "ticket",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewFixturesFetchError はフィクスチャー取得失敗エラーを生成する。
// キャッシュ層はこのエラーを外に出さず、サンプルデータへのフォールバックに変換する。
func NewFixturesFetchError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFixturesFetch,
		Message:  fmt.Sprintf("試合データの取得に失敗しました: %s", reason),
		Category: "fixture",
		Action:   "ネットワーク接続を確認してください。",
	}
}

// NewProfileUpdateError はプロフィール更新失敗エラーを生成する。
func NewProfileUpdateError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileUpdate,
		Message:  fmt.Sprintf("プロフィールの更新に失敗しました: %s", reason),
		Category: "auth",
		Action:   "入力内容を確認し、再度お試しください。",
	}
}
