// Package fixtures は試合データの取得・キャッシュ・フォールバック生成を提供する。
package fixtures

import (
	"fmt"
	"time"

	"github.com/hitoshi/ticketgate/internal/model"
)

// sampleAnchorDate はサンプルデータの最初の試合日時。
// 1試合につき1日ずつ後ろにずらして日程を作る。
var sampleAnchorDate = time.Date(2024, 3, 20, 20, 0, 0, 0, time.UTC)

// sampleTeam はサンプルデータ生成用のチーム定義。
type sampleTeam struct {
	id   int
	name string
}

// sampleLeague はサンプルデータ生成用のリーグ定義。
type sampleLeague struct {
	id      int
	name    string
	country string
	teams   []sampleTeam
}

// sampleLeagues は主要5リーグとその所属チーム。
// IDはフィクスチャーAPIの実IDに合わせてあり、リーグ絞り込みの
// 動作確認が本番データと同じIDで行える。
var sampleLeagues = []sampleLeague{
	{
		id: 39, name: "Premier League", country: "England",
		teams: []sampleTeam{
			{33, "Manchester United"},
			{40, "Liverpool"},
			{42, "Arsenal"},
			{49, "Chelsea"},
			{50, "Manchester City"},
			{47, "Tottenham"},
			{46, "Leicester"},
			{45, "Everton"},
		},
	},
	{
		id: 140, name: "La Liga", country: "Spain",
		teams: []sampleTeam{
			{541, "Real Madrid"},
			{529, "Barcelona"},
			{530, "Atletico Madrid"},
			{532, "Valencia"},
			{536, "Sevilla"},
			{543, "Real Betis"},
		},
	},
	{
		id: 135, name: "Serie A", country: "Italy",
		teams: []sampleTeam{
			{489, "AC Milan"},
			{496, "Juventus"},
			{505, "Inter"},
			{497, "Roma"},
			{492, "Napoli"},
			{487, "Lazio"},
		},
	},
	{
		id: 78, name: "Bundesliga", country: "Germany",
		teams: []sampleTeam{
			{157, "Bayern Munich"},
			{165, "Borussia Dortmund"},
			{173, "RB Leipzig"},
			{169, "Eintracht Frankfurt"},
			{161, "VfL Wolfsburg"},
			{168, "Bayer Leverkusen"},
		},
	},
	{
		id: 61, name: "Ligue 1", country: "France",
		teams: []sampleTeam{
			{85, "Paris Saint Germain"},
			{81, "Marseille"},
			{80, "Lyon"},
			{79, "Lille"},
			{82, "Monaco"},
			{94, "Rennes"},
		},
	},
}

// teamLogoURL はチームIDからロゴ画像URLを組み立てる。
func teamLogoURL(teamID int) string {
	return fmt.Sprintf("https://media.api-sports.io/football/teams/%d.png", teamID)
}

// leagueLogoURL はリーグIDからロゴ画像URLを組み立てる。
func leagueLogoURL(leagueID int) string {
	return fmt.Sprintf("https://media.api-sports.io/football/leagues/%d.png", leagueID)
}

// SampleMatches は決定的なサンプル試合データを生成する。
// リーグごとに全チームの組み合わせ（総当たり）を作り、リスト上で先の
// チームをホームとする。試合IDは1から連番、日時は固定アンカー日から
// 1試合につき1日ずつ進める。同一入力から常に同一の出力が得られるため、
// オフライン開発とテストの双方で安定したデータセットとして使える。
func SampleMatches() model.MatchResponse {
	var matches []model.Match
	matchID := 1

	for _, league := range sampleLeagues {
		for i := 0; i < len(league.teams); i++ {
			for j := i + 1; j < len(league.teams); j++ {
				home := league.teams[i]
				away := league.teams[j]
				date := sampleAnchorDate.AddDate(0, 0, matchID-1)

				m := model.Match{
					Fixture: model.MatchFixture{
						ID:   matchID,
						Date: date.Format(time.RFC3339),
						Status: model.MatchStatus{
							Long:  "Not Started",
							Short: "NS",
						},
						Venue: &model.MatchVenue{
							Name: home.name + " Stadium",
							City: league.country,
						},
					},
					League: model.MatchLeague{
						ID:      league.id,
						Name:    league.name,
						Country: league.country,
						Logo:    leagueLogoURL(league.id),
					},
				}
				m.Teams.Home = model.MatchTeam{Name: home.name, Logo: teamLogoURL(home.id)}
				m.Teams.Away = model.MatchTeam{Name: away.name, Logo: teamLogoURL(away.id)}

				matches = append(matches, m)
				matchID++
			}
		}
	}

	return model.MatchResponse{Response: matches}
}
