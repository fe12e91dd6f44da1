package api

// CHECKOUT CLIENT

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no checkout endpoint is set.
var ErrNotConfigured = errors.New("checkout endpoint is not configured")

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// ChargeRequest hands a rounded quote total to the payment side.
type ChargeRequest struct {
	ServiceKey  string `json:"service_key"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ChatID      int64  `json:"chat_id"`
}

type ChargeResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) CreateCharge(ctx context.Context, charge ChargeRequest) (*ChargeResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if charge.AmountCents <= 0 {
		return nil, fmt.Errorf("invalid charge amount: %d", charge.AmountCents)
	}
	if charge.Currency == "" {
		charge.Currency = "USD"
	}

	body, err := json.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/api/charges", c.baseURL),
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.logger.Warn("Checkout rejected charge",
			zap.String("service", charge.ServiceKey),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result ChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Info("Charge created",
		zap.String("charge_id", result.ID),
		zap.String("service", charge.ServiceKey),
		zap.Int64("amount_cents", charge.AmountCents),
		zap.Int64("chat_id", charge.ChatID))

	return &result, nil
}
