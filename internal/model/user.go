// Package model はドメインモデルを定義する。
package model

// User はログイン中の利用者を表す。
// リモートAPIのレスポンスとローカル保存JSONの両方でこの形を使う。
// IDが0（ゼロ値）のUserは未ログインとして扱う。
type User struct {
	ID          int    `json:"id,omitempty"`
	FirstName   string `json:"f_name"`
	LastName    string `json:"l_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Picture     string `json:"picture,omitempty"`
	LoginMethod string `json:"loginMethod,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
}

// HasID はユーザーが有効な識別子を持つかを返す。
// ローカル保存データの復元時、IDを欠くユーザーは不在として破棄される。
func (u *User) HasID() bool {
	return u != nil && u.ID != 0
}
