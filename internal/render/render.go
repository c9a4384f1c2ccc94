// Package render は取得したデータを端末向けに整形する。
// 色とレイアウトのみを担い、データの取得や状態には関与しない。
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hitoshi/ticketgate/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	teamStyle = lipgloss.NewStyle().
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// formatDate はAPIのISO-8601日時を読みやすい形式に変換する。
// パースできない場合は元の文字列をそのまま返す。
func formatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04 MST")
}

// Matches は試合一覧をリーグ見出し付きで整形する。
func Matches(matches []model.Match) string {
	if len(matches) == 0 {
		return faintStyle.Render("表示できる試合がありません。")
	}

	var b strings.Builder
	currentLeague := -1
	for _, m := range matches {
		if m.League.ID != currentLeague {
			currentLeague = m.League.ID
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s)", m.League.Name, m.League.Country)))
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("  %s  %s vs %s  %s\n",
			faintStyle.Render(fmt.Sprintf("#%-6d", m.Fixture.ID)),
			teamStyle.Render(m.Teams.Home.Name),
			teamStyle.Render(m.Teams.Away.Name),
			faintStyle.Render(formatDate(m.Fixture.Date)),
		))
	}
	return b.String()
}

// Match は1試合の詳細を枠付きで整形する。
func Match(m *model.Match) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", m.Teams.Home.Name, m.Teams.Away.Name)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("リーグ:   %s (%s)\n", m.League.Name, m.League.Country))
	b.WriteString(fmt.Sprintf("日時:     %s\n", formatDate(m.Fixture.Date)))
	b.WriteString(fmt.Sprintf("ステータス: %s\n", m.Fixture.Status.Long))
	if m.Fixture.Venue != nil {
		venue := m.Fixture.Venue.Name
		if m.Fixture.Venue.City != "" {
			venue += ", " + m.Fixture.Venue.City
		}
		b.WriteString(fmt.Sprintf("会場:     %s\n", venue))
	}
	if m.Goals.Home != nil && m.Goals.Away != nil {
		b.WriteString(fmt.Sprintf("スコア:   %d - %d\n", *m.Goals.Home, *m.Goals.Away))
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("試合ID: %d", m.Fixture.ID)))
	return boxStyle.Render(b.String())
}

// Cart はカートの内容を整形する。
func Cart(lines []model.CartLine) string {
	if len(lines) == 0 {
		return faintStyle.Render("カートは空です。")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("カート (%d件)", len(lines))))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(fmt.Sprintf("  %s  %s vs %s  %s\n",
			faintStyle.Render(fmt.Sprintf("#%-6d", line.ID)),
			teamStyle.Render(line.HomeTeam.Name),
			teamStyle.Render(line.AwayTeam.Name),
			faintStyle.Render(line.League.Name),
		))
	}
	return b.String()
}

// User はプロフィールを整形する。
func User(u *model.User) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(u.FirstName + " " + u.LastName))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("メール:   %s\n", u.Email))
	if u.Phone != "" {
		b.WriteString(fmt.Sprintf("電話番号: %s\n", u.Phone))
	}
	if u.Nationality != "" {
		b.WriteString(fmt.Sprintf("国籍:     %s\n", u.Nationality))
	}
	if u.Birthdate != "" {
		b.WriteString(fmt.Sprintf("生年月日: %s\n", u.Birthdate))
	}
	b.WriteString(faintStyle.Render("ユーザーID: " + strconv.Itoa(u.ID)))
	return boxStyle.Render(b.String())
}

// Ticket は購入済みチケット1枚を整形する。
// QRコードのペイロードは文字列のまま表示する。
func Ticket(t *model.Ticket) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.MatchName))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("日時:     %s\n", formatDate(t.MatchDate)))
	b.WriteString(fmt.Sprintf("座席:     %d (ゲート %s)\n", t.Seat.SeatNumber, t.Seat.Gate))
	b.WriteString(fmt.Sprintf("価格:     %.2f\n", t.Seat.Price))
	if t.Seat.Stadium != nil {
		b.WriteString(fmt.Sprintf("会場:     %s, %s\n", t.Seat.Stadium.Name, t.Seat.Stadium.City))
	}
	b.WriteString(fmt.Sprintf("購入日:   %s\n", formatDate(t.PurchaseDate)))
	b.WriteString(fmt.Sprintf("QR:       %s\n", t.QRCode))
	b.WriteString(faintStyle.Render("チケットID: " + t.ID))
	return boxStyle.Render(b.String())
}

// Tickets は購入済みチケットの一覧を整形する。
func Tickets(tickets []model.Ticket) string {
	if len(tickets) == 0 {
		return faintStyle.Render("購入済みのチケットはありません。")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("購入済みチケット (%d件)", len(tickets))))
	b.WriteString("\n")
	for _, t := range tickets {
		b.WriteString(fmt.Sprintf("  %s  %s  座席%d  %s\n",
			faintStyle.Render(t.ID),
			teamStyle.Render(t.MatchName),
			t.Seat.SeatNumber,
			faintStyle.Render(formatDate(t.MatchDate)),
		))
	}
	return b.String()
}

// Error はAPIErrorをユーザー向けに整形する。
// APIError以外のエラーはメッセージのみを表示する。
func Error(err error) string {
	if apiErr, ok := err.(*model.APIError); ok {
		msg := errorStyle.Render(apiErr.Message)
		if apiErr.Action != "" {
			msg += "\n" + faintStyle.Render(apiErr.Action)
		}
		return msg
	}
	return errorStyle.Render(err.Error())
}
