package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medlegalmatch/auth-service/internal/api/dto"
)

// ErrNetwork marks transient transport failures. The session manager never
// retries them automatically; retry is a caller decision.
var ErrNetwork = errors.New("network error")

// APIError is a non-2xx response decoded from the server error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsAuthError reports whether the failure means the caller must re-authenticate.
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized
}

// APIClient talks to the auth endpoints over HTTP/JSON.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient builds a client with a hard request timeout.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Register calls POST /api/auth/register.
func (c *APIClient) Register(ctx context.Context, payload dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login calls POST /api/auth/login.
func (c *APIClient) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	body := dto.LoginRequest{Email: email, Password: password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me calls GET /api/auth/me with the bearer token.
func (c *APIClient) Me(ctx context.Context, token string) (*dto.UserResponse, error) {
	var resp dto.MeResponse
	if err := c.call(ctx, http.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *APIClient) call(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		apiErr := &APIError{Status: res.StatusCode}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
