package storage

// MemStore はインメモリのKVStore実装。テストでの差し替え用。
type MemStore struct {
	data map[string][]byte
}

// NewMemStore はMemStoreを生成する。
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get は指定キーの値を返す。
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	// 呼び出し側の書き換えが内部状態に波及しないようコピーを返す
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set は指定キーに値を保存する。
func (s *MemStore) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Remove は指定キーを削除する。
func (s *MemStore) Remove(key string) error {
	delete(s.data, key)
	return nil
}
