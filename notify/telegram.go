package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Telegram posts portal notifications into a staff chat via the Bot API.
type Telegram struct {
	token  string
	chatID string
	http   *http.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		token:  token,
		chatID: chatID,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the client has credentials to send with.
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// Send delivers one HTML-formatted message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if !t.Enabled() {
		return fmt.Errorf("telegram: bot token or chat id not configured")
	}
	payload := map[string]interface{}{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, _ := json.Marshal(payload)
	url := "https://api.telegram.org/bot" + t.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var data struct {
			Description string `json:"description"`
		}
		_ = json.Unmarshal(raw, &data)
		return fmt.Errorf("telegram: %d %s", resp.StatusCode, data.Description)
	}
	return nil
}
