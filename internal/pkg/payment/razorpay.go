package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohitpatre/raceday/internal/pkg/env"
)

const defaultRazorpayAPIBaseURL = "https://api.razorpay.com/v1"

// GatewayOrder is the order descriptor minted by the payment gateway.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway mints payment orders at the external gateway.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int, currency, receipt string) (*GatewayOrder, error)
}

// RazorpayClient talks to the Razorpay orders API using basic auth with the
// key id/secret pair.
type RazorpayClient struct {
	KeyID     string
	KeySecret string

	APIBaseURL string
	HTTPClient *http.Client
}

// NewRazorpayClientFromEnv builds a client from RAZORPAY_* environment keys.
func NewRazorpayClientFromEnv() *RazorpayClient {
	return &RazorpayClient{
		KeyID:      strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_ID", "")),
		KeySecret:  strings.TrimSpace(env.GetEnv("RAZORPAY_KEY_SECRET", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("RAZORPAY_API_BASE_URL", defaultRazorpayAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type razorpayAPIError struct {
	ErrorBody struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder mints an order at the gateway. Amount is in minor units
// (paise). Any transport or API failure is reported as ErrGatewayUnavailable
// so the caller knows nothing was persisted.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountMinorUnits int, currency, receipt string) (*GatewayOrder, error) {
	if strings.TrimSpace(c.KeyID) == "" || strings.TrimSpace(c.KeySecret) == "" {
		return nil, errors.New("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET are not configured")
	}
	if amountMinorUnits <= 0 {
		return nil, errors.New("order amount must be positive")
	}

	body, err := json.Marshal(map[string]any{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr razorpayAPIError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.ErrorBody.Description != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrGatewayUnavailable, apiErr.ErrorBody.Description, apiErr.ErrorBody.Code)
		}
		return nil, fmt.Errorf("%w: gateway returned status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("%w: decoding order: %v", ErrGatewayUnavailable, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: gateway order has no id", ErrGatewayUnavailable)
	}
	return &order, nil
}
