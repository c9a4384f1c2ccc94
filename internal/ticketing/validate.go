package ticketing

import (
	"strconv"
	"strings"

	"github.com/hitoshi/ticketgate/internal/model"
)

// ValidateOrder はチケット注文の入力をバックエンド送信前に検証する。
// 検証エラーはユーザーにそのまま提示できるAPIErrorとして返す。
// 問題がなければnilを返す。カード情報はどのみちバックエンドでも
// 検証されるが、形式エラーはネットワークに出る前にここで止める。
func ValidateOrder(order model.TicketOrder) error {
	if order.SeatNumber <= 0 {
		return model.NewInvalidSeatError(strconv.Itoa(order.SeatNumber))
	}

	digits := strings.ReplaceAll(order.CardNumber, " ", "")
	if len(digits) != 16 || !isDigits(digits) {
		return model.NewInvalidCardError("card number")
	}

	if order.CardHolderName == "" {
		return model.NewInvalidCardError("cardholder name")
	}

	if !isExpiration(order.ExpirationDate) {
		return model.NewInvalidCardError("expiration date")
	}

	if l := len(order.CVVCode); l < 3 || l > 4 || !isDigits(order.CVVCode) {
		return model.NewInvalidCardError("cvv")
	}

	return nil
}

// isDigits は文字列がASCII数字のみで構成されるかを返す。
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isExpiration はMM/YY形式の有効期限かを返す。
func isExpiration(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	return true
}
