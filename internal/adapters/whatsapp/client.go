package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// requestTimeout bounds each Graph API round trip. Sends are best-effort and never
// retried, so a hung call must not hold a dispatch goroutine for long.
const requestTimeout = 15 * time.Second

// Client handles WhatsApp Cloud API communication
type Client struct {
	baseURL       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
}

// NewClient creates a new WhatsApp client
func NewClient(phoneNumberID, token string) *Client {
	if phoneNumberID == "" {
		panic("WHATSAPP_PHONE_NUMBER_ID is required but not set")
	}
	if token == "" {
		panic("WHATSAPP_TOKEN is required but not set")
	}

	return &Client{
		baseURL:       "https://graph.facebook.com/v19.0",
		phoneNumberID: phoneNumberID,
		token:         token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SendText sends a simple text message
func (c *Client) SendText(ctx context.Context, phone string, message string) error {
	payload := TextMessage{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "text",
	}
	payload.Text.Body = message

	return c.sendMessage(ctx, phone, payload)
}

// sendMessage posts a message payload to the Graph API messages endpoint.
func (c *Client) sendMessage(ctx context.Context, to string, payload interface{}) error {
	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	slog.Debug("whatsapp api request", "to", to, "phone_id", c.phoneNumberID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp API error: status %d, phone_number_id: %s, body: %s",
			resp.StatusCode, c.phoneNumberID, string(body))
	}

	return nil
}
