// Package cart は購入前の試合選択を保持するカートを提供する。
package cart

import "github.com/hitoshi/ticketgate/internal/model"

// Store は購入予定の試合の一時的な選択リスト。
// メモリ上にのみ存在し、プロセスを跨いで永続化されない。
// 挿入順を保持し、同一IDの行は高々1つ。
// メインゴルーチンからの単一ライターを前提とし、ロックしない。
type Store struct {
	lines []model.CartLine
}

// New は空のカートを生成する。
func New() *Store {
	return &Store{}
}

// Add は行を追加し、実際に挿入されたかを返す。
// 同一IDの行が既に存在する場合は何もせずfalseを返す。
func (s *Store) Add(line model.CartLine) bool {
	if s.Contains(line.ID) {
		return false
	}
	s.lines = append(s.lines, line)
	return true
}

// Remove は指定IDの行を取り除く。存在しない場合は何もしない。冪等。
func (s *Store) Remove(id int) {
	filtered := s.lines[:0]
	for _, l := range s.lines {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	s.lines = filtered
}

// Contains は指定IDの行が存在するかを返す。
func (s *Store) Contains(id int) bool {
	for _, l := range s.lines {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Lines は挿入順のカート内容のコピーを返す。
func (s *Store) Lines() []model.CartLine {
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len はカート内の行数を返す。
func (s *Store) Len() int {
	return len(s.lines)
}
