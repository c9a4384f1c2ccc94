// Package model はドメインモデルを定義する。
package model

// MatchTeam は試合の片側のチームを表す。
type MatchTeam struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// MatchStatus はフィクスチャーAPIが返す試合ステータス。
type MatchStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed,omitempty"`
}

// MatchVenue は開催スタジアムを表す。Cityは未設定の場合がある。
type MatchVenue struct {
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// MatchFixture は試合のメタデータ（ID、日時、ステータス、会場）を表す。
type MatchFixture struct {
	ID      int         `json:"id"`
	Date    string      `json:"date"`
	Status  MatchStatus `json:"status"`
	Venue   *MatchVenue `json:"venue,omitempty"`
	Referee string      `json:"referee,omitempty"`
}

// MatchLeague は試合が属するリーグを表す。
type MatchLeague struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
}

// MatchGoals は両チームの得点を表す。未開始の試合ではnil。
type MatchGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Match はフィクスチャーAPIが返す1試合分の完全な表現。
// キャッシュにはこの形のまま保存される。
type Match struct {
	Fixture MatchFixture `json:"fixture"`
	League  MatchLeague  `json:"league"`
	Teams   struct {
		Home MatchTeam `json:"home"`
		Away MatchTeam `json:"away"`
	} `json:"teams"`
	Goals MatchGoals `json:"goals"`
}

// MatchResponse はフィクスチャーAPIのレスポンスエンベロープ。
type MatchResponse struct {
	Response []Match `json:"response"`
}

// CartLine はカートに入れた試合のサマリー。
// Match全体ではなく購入画面が必要とする最小限のフィールドのみを持つ。
type CartLine struct {
	ID       int       `json:"id"`
	HomeTeam MatchTeam `json:"homeTeam"`
	AwayTeam MatchTeam `json:"awayTeam"`
	League   struct {
		Name string `json:"name"`
	} `json:"league"`
	Date string `json:"date"`
}

// CartLineFromMatch はキャッシュ上のMatchからカート行を組み立てる。
func CartLineFromMatch(m *Match) CartLine {
	line := CartLine{
		ID:       m.Fixture.ID,
		HomeTeam: m.Teams.Home,
		AwayTeam: m.Teams.Away,
		Date:     m.Fixture.Date,
	}
	line.League.Name = m.League.Name
	return line
}
