package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sahilkadam/medipay-backend/pkg/config"
)

// Sender delivers a text message to a single phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Client talks to the Fast2SMS bulk endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
}

type apiRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Numbers  string `json:"numbers"`
	Flash    int    `json:"flash"`
}

type apiResponse struct {
	Return    bool     `json:"return"`
	RequestID string   `json:"request_id"`
	Message   []string `json:"message"`
}

// NewClient builds a Fast2SMS client from config.
func NewClient(cfg config.SMSConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("sms api key is required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("sms endpoint is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.SendTimeout},
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
	}, nil
}

// Send posts the message to the provider. A non-2xx status or a negative
// provider response is returned as an error so callers can fall back.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("phone is required")
	}
	if strings.TrimSpace(message) == "" {
		return errors.New("message is required")
	}

	payload, err := json.Marshal(apiRequest{
		Route:    "q",
		Message:  message,
		Language: "english",
		Numbers:  phone,
		Flash:    0,
	})
	if err != nil {
		return fmt.Errorf("encoding sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("reading sms response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decoding sms response: %w", err)
	}
	if !parsed.Return {
		return fmt.Errorf("sms provider rejected message: %s", strings.Join(parsed.Message, "; "))
	}
	return nil
}
