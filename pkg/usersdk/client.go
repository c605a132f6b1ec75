package usersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the userhub service. It exposes the
// unauthenticated operations (register, login) and creates authenticated
// Sessions from a successful login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a userhub client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account and returns its public view.
func (c *Client) Register(ctx context.Context, name, email, password string) (*UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns an authenticated Session carrying the
// bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: out.Token, User: out.User}, nil
}

// Session is an authenticated view of the API, bound to the bearer token
// obtained at login. Tokens cannot be refreshed or revoked; when the token
// expires the caller logs in again.
type Session struct {
	client *Client
	token  string

	// User is the public view returned at login.
	User UserResponse
}

// Token returns the raw bearer token, e.g. for use by other clients.
func (s *Session) Token() string { return s.token }

// ListUsers returns the public view of every account.
func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/users", nil, s.token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser returns the public view of a single account.
func (s *Session) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	var out UserResponse
	path := fmt.Sprintf("/api/users/%d", id)
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, s.token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update; nil fields are left unchanged.
func (s *Session) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	path := fmt.Sprintf("/api/users/%d", id)
	if err := s.client.doJSON(ctx, http.MethodPut, path, req, s.token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account irreversibly.
func (s *Session) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/users/%d", id)
	return s.client.doJSON(ctx, http.MethodDelete, path, nil, s.token, nil)
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding a JSON response into out when out is non-nil.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	in any,
	token string,
	out any,
) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("usersdk: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("usersdk: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("usersdk: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("usersdk: read response: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("usersdk: decode response: %w", err)
		}
	}
	return nil
}
