package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var (
	ErrMissingCredentials = errors.New("missing email or password")
	ErrSignInFailed       = errors.New("invalid email or password")
)

// RegistrationError carries the message the backend returned.
type RegistrationError struct {
	Status  int
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

// BackendClient talks to the identity backend that owns user accounts.
type BackendClient struct {
	BaseURL string
	HTTP    *http.Client
	log     *slog.Logger
	backoff func(attempt int) time.Duration
}

func NewBackendClient(baseURL string, log *slog.Logger) *BackendClient {
	if log == nil {
		log = slog.Default()
	}
	return &BackendClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		log:     log.With("component", "auth-backend"),
		backoff: func(i int) time.Duration { return time.Duration(1<<i) * time.Second },
	}
}

// doWithRetry retries transport failures with exponential backoff. HTTP
// error statuses are returned to the caller as is.
func (c *BackendClient) doWithRetry(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-time.After(c.backoff(i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// Login checks credentials against <backend>/auth/login. Any failure is
// reported as ErrSignInFailed and the cause is logged.
func (c *BackendClient) Login(ctx context.Context, email, password string) (User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	b, _ := json.Marshal(map[string]string{"email": email, "password": password})

	resp, err := c.doWithRetry(ctx, http.MethodPost, "/auth/login", b)
	if err != nil {
		c.log.Error("login request failed", "error", err)
		return User{}, ErrSignInFailed
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("login rejected", "status", resp.StatusCode, "body", string(raw))
		return User{}, ErrSignInFailed
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		c.log.Error("login response unusable", "error", err)
		return User{}, ErrSignInFailed
	}
	return u, nil
}

// Register forwards the validated form to <backend>/users/register.
func (c *BackendClient) Register(ctx context.Context, r RegisterRequest) (map[string]interface{}, error) {
	b, _ := json.Marshal(r)

	resp, err := c.doWithRetry(ctx, http.MethodPost, "/users/register", b)
	if err != nil {
		c.log.Error("register request failed", "error", err)
		return nil, fmt.Errorf("network error: cannot connect to backend at %s", c.BaseURL)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := out["message"].(string)
		if msg == "" {
			msg = fmt.Sprintf("Registration failed with status: %d", resp.StatusCode)
		}
		c.log.Warn("registration rejected", "status", resp.StatusCode, "message", msg)
		return nil, &RegistrationError{Status: resp.StatusCode, Message: msg}
	}
	return out, nil
}

func (c *BackendClient) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doWithRetry(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list users: backend returned status %d", resp.StatusCode)
	}
	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
