// README: Outbound Telegram Bot API client (sendMessage only).
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Client delivers replies through the Telegram Bot API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func NewClient(token string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: defaultAPIBase,
		token:   token,
	}
}

// NewClientWithBaseURL exists for tests that point the client at a stub server.
func NewClientWithBaseURL(token, baseURL string, timeout time.Duration) *Client {
	c := NewClient(token, timeout)
	c.baseURL = baseURL
	return c
}

type sendMessageReq struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage posts text to the given chat. Telegram accepts chat ids as
// strings, which keeps the conversation identifier opaque end to end.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageReq{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}
