// Package model はドメインモデルを定義する。
package model

// TicketSeat は発券された座席を表す。
type TicketSeat struct {
	SeatNumber int     `json:"seatNumber"`
	Gate       string  `json:"gate"`
	Price      float64 `json:"price"`
	Stadium    *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		City string `json:"city"`
	} `json:"stadium,omitempty"`
}

// Ticket はチケッティングAPIが発行したチケットを表す。
// QRCodeはAPIが生成したペイロード文字列で、このクライアントは描画しない。
type Ticket struct {
	ID           string     `json:"id"`
	MatchName    string     `json:"matchName"`
	MatchDate    string     `json:"matchDate"`
	QRCode       string     `json:"qrCode"`
	PurchaseDate string     `json:"purchaseDate"`
	Seat         TicketSeat `json:"seat"`
}

// TicketOrder はチケット作成リクエストの入力。
// フォームエンコードでPOSTされるフィールドに対応する。
type TicketOrder struct {
	HomeTeamName string
	AwayTeamName string
	MatchDate    string
	SeatNumber   int
	VenueName    string
	VenueCity    string

	// 決済スタブのフィールド。バックエンドは検証のみ行い保存しない。
	CardType       string
	CardNumber     string
	CardHolderName string
	ExpirationDate string
	CVVCode        string
}
