package opsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sitecrew/auth-api/internal/config"
	"github.com/sitecrew/auth-api/internal/domain"
)

// Credentials are forwarded to the operations API for validation. UserType is
// the role hint the mobile client sends alongside the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type,omitempty"`
}

// Client calls the remote operations API. Only the login endpoint is needed
// here; all other operations-API resources are consumed by the mobile client
// directly.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.OpsAPIBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login validates credentials and returns the matching account record.
// Any non-200 response is treated as an authentication failure.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.Account, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ops api login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	var acct domain.Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if acct.Email == "" {
		return nil, fmt.Errorf("login response missing email: %w", domain.ErrUnauthorized)
	}
	return &acct, nil
}
