package notify

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// DepositRequest is the payload relayed to the staff chat when a player
// submits a deposit form.
type DepositRequest struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	AccountName   string  `json:"account_name"`
	AccountNumber string  `json:"account_number"`
	Reference     string  `json:"reference"`
	Notes         string  `json:"notes"`
}

// FormatDeposit renders the staff notification. User-supplied values are
// HTML-escaped since the message is sent with parse_mode HTML.
func FormatDeposit(r DepositRequest, at time.Time) string {
	var b strings.Builder
	b.WriteString("<b>Permintaan Deposit Baru</b>\n\n")
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", label, html.EscapeString(value))
	}
	line("Username", r.Username)
	line("Email", r.Email)
	fmt.Fprintf(&b, "<b>Jumlah:</b> Rp %.0f\n", r.Amount)
	line("Metode", r.PaymentMethod)
	line("Nama Rekening", r.AccountName)
	line("Nomor Rekening", r.AccountNumber)
	line("Referensi", r.Reference)
	line("Catatan", r.Notes)
	fmt.Fprintf(&b, "\n<i>%s</i>", at.Format("02 Jan 2006 15:04:05 MST"))
	return b.String()
}
