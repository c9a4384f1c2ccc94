package cart

import (
	"testing"

	"github.com/hitoshi/ticketgate/internal/model"
)

// line はテスト用のカート行を生成する。
func line(id int, home, away string) model.CartLine {
	l := model.CartLine{ID: id, Date: "2024-03-20T20:00:00Z"}
	l.HomeTeam = model.MatchTeam{Name: home}
	l.AwayTeam = model.MatchTeam{Name: away}
	l.League.Name = "Premier League"
	return l
}

func TestAdd_ReturnsInsertOutcome(t *testing.T) {
	s := New()

	if !s.Add(line(1, "Arsenal", "Chelsea")) {
		t.Error("first Add = false, want true")
	}
	if s.Add(line(1, "Arsenal", "Chelsea")) {
		t.Error("duplicate Add = true, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestAdd_DeduplicatesByID(t *testing.T) {
	s := New()
	s.Add(line(1, "Arsenal", "Chelsea"))
	s.Add(line(2, "Liverpool", "Everton"))

	// 同一IDはチーム名が違っても重複とみなす（同一性はIDのみで判定）
	s.Add(line(2, "Lyon", "Lille"))

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	lines := s.Lines()
	if lines[1].HomeTeam.Name != "Liverpool" {
		t.Errorf("existing line mutated: home = %q, want Liverpool", lines[1].HomeTeam.Name)
	}
}

func TestAdd_ManyDuplicatesKeepOne(t *testing.T) {
	s := New()
	for i := 0; i < 10; i++ {
		s.Add(line(5, "Bayern Munich", "Borussia Dortmund"))
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1 after repeated duplicate adds", s.Len())
	}
}

func TestRemove_IsIdempotent(t *testing.T) {
	s := New()
	s.Add(line(1, "Arsenal", "Chelsea"))

	s.Remove(1)
	s.Remove(1) // 2回目は何もしない

	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

// TestScenario_AddRemoveSequence はカート操作の一連のシナリオを検証する。
// {1,2}に重複addしてもサイズ不変、remove(1)で{2}、remove(99)は無害。
func TestScenario_AddRemoveSequence(t *testing.T) {
	s := New()
	s.Add(line(1, "Arsenal", "Chelsea"))
	s.Add(line(2, "Liverpool", "Everton"))

	s.Add(line(2, "Liverpool", "Everton"))
	if s.Len() != 2 {
		t.Fatalf("after duplicate add: Len = %d, want 2", s.Len())
	}

	s.Remove(1)
	if s.Len() != 1 || !s.Contains(2) || s.Contains(1) {
		t.Fatalf("after Remove(1): lines = %+v, want only id 2", s.Lines())
	}

	s.Remove(99)
	if s.Len() != 1 || !s.Contains(2) {
		t.Fatalf("after Remove(99): lines = %+v, want only id 2", s.Lines())
	}
}

func TestLines_PreservesInsertionOrderAndCopies(t *testing.T) {
	s := New()
	s.Add(line(3, "Roma", "Lazio"))
	s.Add(line(1, "Inter", "AC Milan"))
	s.Add(line(2, "Napoli", "Juventus"))

	lines := s.Lines()
	wantOrder := []int{3, 1, 2}
	for i, want := range wantOrder {
		if lines[i].ID != want {
			t.Errorf("lines[%d].ID = %d, want %d", i, lines[i].ID, want)
		}
	}

	// 返り値への書き換えが内部状態に波及しないこと
	lines[0].HomeTeam.Name = "mutated"
	if s.Lines()[0].HomeTeam.Name == "mutated" {
		t.Error("Lines() must return a copy")
	}
}

func TestLen_EmptyCart(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if s.Contains(1) {
		t.Error("Contains(1) = true on empty cart")
	}
	s.Remove(1) // 空カートへのRemoveも無害
}
