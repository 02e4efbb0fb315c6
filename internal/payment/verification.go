package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrVerification is returned for any failed round trip to the student
// verification collaborator.
var ErrVerification = errors.New("student verification error")

// VerificationClient talks to the external student-verification service.
type VerificationClient struct {
	baseURL string
	http    *http.Client
}

// NewVerificationClient builds a client for the verifier at baseURL.
func NewVerificationClient(baseURL string) *VerificationClient {
	return &VerificationClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks an email against a university identifier and returns
// whether the pair is a valid student registration.
func (c *VerificationClient) Verify(ctx context.Context, email, university string) (bool, error) {
	body, err := json.Marshal(map[string]string{
		"email":      email,
		"university": university,
	})
	if err != nil {
		return false, fmt.Errorf("%w: encode request: %v", ErrVerification, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("%w: status %d", ErrVerification, resp.StatusCode)
	}
	var out struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", ErrVerification, err)
	}
	return out.Valid, nil
}
