package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore はキーごとに1ファイルを使うKVStoreの実装。
// 単一プロセス・単一ライターを前提とする（マルチプロセス整合性は非目標）。
// 書き込みは一時ファイルへの書き出しとrenameで行い、中途半端な
// ファイルが残らないようにする。
type FileStore struct {
	dir string
}

// NewFileStore はFileStoreを生成する。保存先ディレクトリがなければ作成する。
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get は指定キーの値を返す。
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set は指定キーに値を保存する。
func (s *FileStore) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file for %s: %w", key, err)
	}
	return nil
}

// Remove は指定キーを削除する。
func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// path はキーに対応するファイルパスを返す。
// パス区切り文字を潰してディレクトリ外への書き込みを防ぐ。
func (s *FileStore) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
