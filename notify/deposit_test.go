package notify

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDeposit(t *testing.T) {
	at := time.Date(2025, 6, 1, 13, 30, 0, 0, time.UTC)
	msg := FormatDeposit(DepositRequest{
		Username:      "budi88",
		Amount:        250000,
		PaymentMethod: "BCA",
		AccountName:   "Budi Santoso",
		AccountNumber: "1234567890",
		Reference:     "DEP20250601133000-0420",
	}, at)

	for _, want := range []string{
		"<b>Permintaan Deposit Baru</b>",
		"<b>Username:</b> budi88",
		"<b>Jumlah:</b> Rp 250000",
		"<b>Metode:</b> BCA",
		"DEP20250601133000-0420",
		"01 Jun 2025 13:30:00 UTC",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Email:") {
		t.Error("empty email should be omitted")
	}
}

func TestFormatDepositEscapesHTML(t *testing.T) {
	msg := FormatDeposit(DepositRequest{
		Username: "<script>alert(1)</script>",
		Amount:   100,
	}, time.Now())
	if strings.Contains(msg, "<script>") {
		t.Error("username was not escaped")
	}
	if !strings.Contains(msg, "&lt;script&gt;") {
		t.Error("expected escaped username in message")
	}
}

func TestTelegramEnabled(t *testing.T) {
	if NewTelegram("", "").Enabled() {
		t.Error("empty client should be disabled")
	}
	if !NewTelegram("123:abc", "-100123").Enabled() {
		t.Error("configured client should be enabled")
	}
}
