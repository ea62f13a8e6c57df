package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Telegram posts the order message to one or more chat IDs through the Bot
// API. Per-chat failures are collected; the send succeeds if any chat took it.
type Telegram struct {
	token   string
	chatIDs []string
	client  *http.Client
}

// NewTelegram accepts a comma-separated chat ID list.
func NewTelegram(token, rawChatIDs string) *Telegram {
	ids := []string{}
	for _, part := range strings.Split(rawChatIDs, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return &Telegram{token: token, chatIDs: ids, client: &http.Client{Timeout: 10 * time.Second}}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(ctx context.Context, message string) error {
	if t.token == "" || len(t.chatIDs) == 0 {
		return fmt.Errorf("telegram not configured")
	}
	apiURL := "https://api.telegram.org/bot" + t.token + "/sendMessage"
	delivered := false
	var lastErr error
	for _, id := range t.chatIDs {
		form := url.Values{}
		form.Set("chat_id", id)
		form.Set("text", message)
		form.Set("disable_web_page_preview", "1")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			lastErr = err
			continue
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode >= 300 {
				body, _ := io.ReadAll(resp.Body)
				lastErr = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
				return
			}
			delivered = true
		}()
	}
	if delivered {
		return nil
	}
	return lastErr
}
