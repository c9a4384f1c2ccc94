package render

import (
	"strings"
	"testing"

	"github.com/hitoshi/ticketgate/internal/model"
)

func sampleMatch(id int, league, home, away string) model.Match {
	m := model.Match{}
	m.Fixture.ID = id
	m.Fixture.Date = "2024-05-01T18:00:00Z"
	m.Fixture.Status = model.MatchStatus{Long: "Not Started", Short: "NS"}
	m.League = model.MatchLeague{ID: 39, Name: league, Country: "England"}
	m.Teams.Home = model.MatchTeam{Name: home}
	m.Teams.Away = model.MatchTeam{Name: away}
	return m
}

func TestMatches_GroupsByLeague(t *testing.T) {
	matches := []model.Match{
		sampleMatch(1, "Premier League", "Arsenal", "Chelsea"),
		sampleMatch(2, "Premier League", "Liverpool", "Everton"),
	}
	matches = append(matches, func() model.Match {
		m := sampleMatch(3, "La Liga", "Barcelona", "Sevilla")
		m.League.ID = 140
		m.League.Country = "Spain"
		return m
	}())

	out := Matches(matches)

	if strings.Count(out, "Premier League") != 1 {
		t.Errorf("league header must appear once per group:\n%s", out)
	}
	for _, want := range []string{"Arsenal", "Liverpool", "Barcelona", "La Liga", "#1", "#3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatches_Empty(t *testing.T) {
	out := Matches(nil)
	if !strings.Contains(out, "試合がありません") {
		t.Errorf("output = %q, want empty-state message", out)
	}
}

func TestMatch_IncludesVenueAndStatus(t *testing.T) {
	m := sampleMatch(5, "Premier League", "Arsenal", "Chelsea")
	m.Fixture.Venue = &model.MatchVenue{Name: "Emirates Stadium", City: "London"}

	out := Match(&m)

	for _, want := range []string{"Arsenal vs Chelsea", "Emirates Stadium, London", "Not Started", "試合ID: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCart_ListsLines(t *testing.T) {
	m1 := sampleMatch(1, "Premier League", "Arsenal", "Chelsea")
	m2 := sampleMatch(2, "Premier League", "Liverpool", "Everton")
	lines := []model.CartLine{model.CartLineFromMatch(&m1), model.CartLineFromMatch(&m2)}

	out := Cart(lines)

	if !strings.Contains(out, "2件") {
		t.Errorf("output missing count:\n%s", out)
	}
	if !strings.Contains(out, "Arsenal") || !strings.Contains(out, "Liverpool") {
		t.Errorf("output missing team names:\n%s", out)
	}
}

func TestCart_Empty(t *testing.T) {
	if out := Cart(nil); !strings.Contains(out, "カートは空です") {
		t.Errorf("output = %q, want empty-state message", out)
	}
}

func TestUser_ShowsProfile(t *testing.T) {
	u := &model.User{ID: 7, FirstName: "Taro", LastName: "Yamada", Email: "taro@example.com", Nationality: "JP"}

	out := User(u)

	for _, want := range []string{"Taro Yamada", "taro@example.com", "JP", "ユーザーID: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTicket_ShowsQRPayloadAsText(t *testing.T) {
	ticket := &model.Ticket{
		ID:           "t-1",
		MatchName:    "Arsenal vs Chelsea",
		MatchDate:    "2024-05-01T18:00:00Z",
		QRCode:       "QR-PAYLOAD-XYZ",
		PurchaseDate: "2024-04-01T10:00:00Z",
		Seat:         model.TicketSeat{SeatNumber: 12, Gate: "B", Price: 55},
	}

	out := Ticket(ticket)

	for _, want := range []string{"Arsenal vs Chelsea", "QR-PAYLOAD-XYZ", "座席:     12", "ゲート B"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestError_APIErrorIncludesAction(t *testing.T) {
	err := model.NewTokenMissingError()

	out := Error(err)

	if !strings.Contains(out, "認証トークンが見つかりません") {
		t.Errorf("output missing message:\n%s", out)
	}
	if !strings.Contains(out, "ログインし直してください") {
		t.Errorf("output missing action:\n%s", out)
	}
}
