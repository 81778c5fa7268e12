package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Publisher delivers a finished post to a Telegram chat via the Bot API,
// bypassing the backend's publish endpoint.
type Publisher struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher registers bot token and chat identifier.
func NewPublisher(botToken, chatID string) *Publisher {
	return &Publisher{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewPublisherWithBase overrides the Bot API host, used by tests.
func NewPublisherWithBase(apiBase, botToken, chatID string) *Publisher {
	p := NewPublisher(botToken, chatID)
	p.apiBase = strings.TrimRight(apiBase, "/")
	return p
}

// Configured reports whether the publisher has enough settings to send.
func (p *Publisher) Configured() bool {
	return p != nil && p.botToken != "" && p.chatID != ""
}

// Publish posts the content; when the post carries an image it goes out as
// a photo with the text as caption, otherwise as a plain message.
func (p *Publisher) Publish(ctx context.Context, post domain.Post) error {
	if !p.Configured() {
		return fmt.Errorf("telegram publisher misconfigured")
	}

	method := "sendMessage"
	form := url.Values{}
	form.Set("chat_id", p.chatID)

	if post.ImageURL != "" {
		method = "sendPhoto"
		form.Set("photo", post.ImageURL)
		form.Set("caption", post.Content)
	} else {
		form.Set("text", post.Content)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", p.apiBase, p.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
