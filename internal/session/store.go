// Package session はログイン状態の保持と永続化を提供する。
package session

import (
	"encoding/json"
	"log/slog"

	"github.com/hitoshi/ticketgate/internal/model"
	"github.com/hitoshi/ticketgate/internal/storage"
)

// Store はログイン中ユーザーとbearerトークンの唯一の置き場。
// KVStoreに永続化し、生成時に復元する。
// すべての操作はメインゴルーチンからの単一ライターを前提とし、ロックしない。
type Store struct {
	kv     storage.KVStore
	logger *slog.Logger
	user   *model.User
	token  string
}

// New はStoreを生成し、永続化済みの状態を復元する。
// 保存データのパース失敗やIDを欠くユーザーは未ログイン状態として扱い、
// エラーは呼び出し元に返さずログに記録する。
func New(kv storage.KVStore, logger *slog.Logger) *Store {
	s := &Store{kv: kv, logger: logger}
	s.rehydrate()
	return s
}

// rehydrate は保存済みのユーザーとトークンを読み込む。
func (s *Store) rehydrate() {
	data, ok, err := s.kv.Get(storage.KeyUser)
	if err != nil {
		s.logger.Error("保存済みユーザーの読み込みに失敗しました",
			slog.String("error", err.Error()),
		)
	} else if ok {
		var u model.User
		if err := json.Unmarshal(data, &u); err != nil {
			s.logger.Error("保存済みユーザーのパースに失敗しました",
				slog.String("error", err.Error()),
			)
		} else if !u.HasID() {
			// IDを欠くデータは不正な保存状態とみなして採用しない
			s.logger.Warn("保存済みユーザーにIDがないため破棄します")
		} else {
			s.user = &u
		}
	}

	tok, ok, err := s.kv.Get(storage.KeyToken)
	if err != nil {
		s.logger.Error("保存済みトークンの読み込みに失敗しました",
			slog.String("error", err.Error()),
		)
	} else if ok {
		s.token = string(tok)
	}
}

// Login は現在のユーザーをまるごと置き換えて永続化する。
// フィールドの妥当性検証は行わない（検証は呼び出し側のフォームの責務）。
func (s *Store) Login(user *model.User) {
	s.user = user

	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("ユーザーのシリアライズに失敗しました",
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.kv.Set(storage.KeyUser, data); err != nil {
		// 永続化失敗でもメモリ上の状態は更新済み。次回起動時に未ログインに戻るだけ。
		s.logger.Error("ユーザーの永続化に失敗しました",
			slog.String("error", err.Error()),
		)
	}
}

// Logout はユーザーとトークンを破棄し、永続化エントリを削除する。
// 冪等であり、未ログイン状態で呼んでも害はない。
func (s *Store) Logout() {
	s.user = nil
	s.token = ""

	if err := s.kv.Remove(storage.KeyUser); err != nil {
		s.logger.Error("保存済みユーザーの削除に失敗しました",
			slog.String("error", err.Error()),
		)
	}
	if err := s.kv.Remove(storage.KeyToken); err != nil {
		s.logger.Error("保存済みトークンの削除に失敗しました",
			slog.String("error", err.Error()),
		)
	}
}

// Current はログイン中のユーザーを返す。未ログインの場合はnil。
func (s *Store) Current() *model.User {
	return s.user
}

// LoggedIn は有効なIDを持つユーザーが存在するかを返す。
func (s *Store) LoggedIn() bool {
	return s.user.HasID()
}

// SetToken はバックエンドが発行したbearerトークンを保持・永続化する。
func (s *Store) SetToken(token string) {
	s.token = token
	if err := s.kv.Set(storage.KeyToken, []byte(token)); err != nil {
		s.logger.Error("トークンの永続化に失敗しました",
			slog.String("error", err.Error()),
		)
	}
}

// Token は保持中のbearerトークンを返す。未保持の場合は空文字。
func (s *Store) Token() string {
	return s.token
}
