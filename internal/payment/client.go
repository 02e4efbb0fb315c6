// Package payment wraps the external payment collaborator. The service
// layer only trusts its own subscription state after one of these calls
// reports success; any transport failure or non-2xx response surfaces as
// ErrProvider and must leave local state untouched.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lusotown/community-platform/internal/model"
)

// ErrProvider is returned for any failed round trip to the payment
// provider. Callers report it to the user and keep their last-known-good
// state.
var ErrProvider = errors.New("payment provider error")

// Client talks to the hosted payment provider's REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the provider at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckoutRequest is the input for creating a hosted checkout session.
type CheckoutRequest struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Tier   model.Tier `json:"tier"`
	Plan   model.Plan `json:"plan"`
}

// CreateCheckoutSession asks the provider for a checkout session and
// returns its id, used to redirect the member to hosted checkout.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	if err := c.post(ctx, "/checkout-sessions", req, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("%w: empty session id", ErrProvider)
	}
	return out.SessionID, nil
}

// CancelSubscription cancels the provider-side subscription.
func (c *Client) CancelSubscription(ctx context.Context, providerSubscriptionID string) error {
	return c.post(ctx, "/subscriptions/"+providerSubscriptionID+"/cancel", nil, nil)
}

// UpgradeSubscription moves the provider-side subscription to a new tier.
func (c *Client) UpgradeSubscription(ctx context.Context, providerSubscriptionID string, tier model.Tier) error {
	body := map[string]string{"tier": string(tier)}
	return c.post(ctx, "/subscriptions/"+providerSubscriptionID+"/upgrade", body, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrProvider, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrProvider, err)
		}
	}
	return nil
}
