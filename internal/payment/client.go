// Package payment implements the UPI checkout-intent flow: order creation
// against the hosted provider and the webhook relay that settles local
// order state.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 15 * time.Second

// ProviderClient talks to the hosted checkout provider's Orders API
// (Razorpay-style: basic auth with a key id/secret pair).
type ProviderClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	client    *http.Client
}

// NewProviderClient constructs a client with a shared HTTP client.
func NewProviderClient(baseURL, keyID, keySecret string) *ProviderClient {
	return &ProviderClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		client:    &http.Client{Timeout: httpTimeout},
	}
}

// ErrProviderDisabled is returned when no provider credentials are configured.
var ErrProviderDisabled = fmt.Errorf("payment provider credentials not configured")

// ProviderOrder mirrors the provider's order resource.
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// orderRequest mirrors the provider's order-creation body. Amounts are in
// paise; receipt carries our local order id for reconciliation.
type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder registers a checkout order with the provider and returns the
// provider's order resource. The returned order id is what the frontend
// hands to the hosted checkout.
func (c *ProviderClient) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*ProviderOrder, error) {
	if c.KeyID == "" || c.KeySecret == "" {
		return nil, ErrProviderDisabled
	}

	body, err := json.Marshal(orderRequest{
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var order ProviderOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("provider order response missing id")
	}

	return &order, nil
}
