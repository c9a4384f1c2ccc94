// Package storage はローカル状態の永続化インターフェースを定義する。
// ブラウザのlocalStorageに相当する、キー単位の小さなJSON blobの保存先。
package storage

// 永続化キー。ストア間で衝突しないよう一箇所で定義する。
const (
	// KeyUser はログイン中ユーザーのJSON blob。
	KeyUser = "user"
	// KeyToken はバックエンドが発行したbearerトークン。
	KeyToken = "token"
	// KeyMatchData は試合キャッシュのエンベロープJSON。
	KeyMatchData = "match_data"
)

// KVStore はキー・バリュー永続化のインターフェース。
// 実装はファイルベース（本番）とインメモリ（テスト）の2種類。
// 値は呼び出し側がまるごと読み書きする。部分更新は提供しない。
type KVStore interface {
	// Get は指定キーの値を返す。キーが存在しない場合は(nil, false, nil)。
	Get(key string) ([]byte, bool, error)
	// Set は指定キーに値を保存する。既存の値は上書きされる。
	Set(key string, value []byte) error
	// Remove は指定キーを削除する。存在しないキーの削除は成功扱い。
	Remove(key string) error
}
