// Package grails is the narrow client for the upstream marketplace API. It
// supplies read-only market data for names and verifies wallet signatures on
// login; the marketplace's own behavior is out of scope.
package grails

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/config"
)

var (
	ErrNameNotFound = errors.New("grails: name not found")
	ErrUnavailable  = errors.New("grails: upstream unavailable")
)

// Listing is the market view of one name as the upstream reports it.
type Listing struct {
	Name        string     `json:"name"`
	Owner       string     `json:"owner"`
	Listed      bool       `json:"listed"`
	PriceWei    string     `json:"priceWei,omitempty"`
	LastSaleWei string     `json:"lastSaleWei,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg config.GrailsConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// GetListing fetches market data for a single (already normalized) name.
func (c *Client) GetListing(ctx context.Context, name string) (*Listing, error) {
	endpoint := fmt.Sprintf("%s/api/v1/names/%s", c.baseURL, url.PathEscape(name))

	var listing Listing
	if err := c.getJSON(ctx, endpoint, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

type verifyRequest struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// VerifySignature asks the upstream to verify a signed login message for the
// given wallet address. The admin API never touches wallet cryptography
// itself.
func (c *Client) VerifySignature(ctx context.Context, address, message, signature string) (bool, error) {
	endpoint := c.baseURL + "/api/v1/auth/verify"

	body, err := json.Marshal(verifyRequest{
		Address:   address,
		Message:   message,
		Signature: signature,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: verify returned %d", ErrUnavailable, resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return vr.Valid, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return ErrNameNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
