package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/authify/authify-cli/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements Client against the Authify REST backend. The session
// credential travels as an HTTP-only cookie managed by the jar; the client
// never reads it. An optional state file persists the jar's cookies for the
// backend origin so a CLI session survives process restarts.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	statePath string
	log       logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithStateFile enables cookie persistence at the given path. An empty path
// keeps the jar in memory only.
func WithStateFile(path string) Option {
	return func(c *HTTPClient) {
		c.statePath = path
	}
}

// WithLogger sets the client logger.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) {
		if log != nil {
			c.log = log
		}
	}
}

// NewHTTPClient builds a client for the backend at baseURL,
// e.g. "http://localhost:8080/api/v1.0".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar init: %w", err)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: defaultTimeout},
		log:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.statePath != "" {
		if err := c.loadState(); err != nil {
			// A broken state file must not block startup; the user just logs in again.
			c.log.Warn(context.Background(), "could not restore client state", "path", c.statePath, "error", err)
		}
	}
	return c, nil
}

// Close persists cookie state when a state file is configured.
func (c *HTTPClient) Close() error {
	if c.statePath == "" {
		return nil
	}
	return c.saveState()
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "register", nil, body, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "login", nil, body, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "logout", nil, nil, nil)
}

func (c *HTTPClient) CheckSession(ctx context.Context) (bool, error) {
	var alive bool
	if err := c.do(ctx, http.MethodGet, "is-authenticated", nil, nil, &alive); err != nil {
		return false, err
	}
	return alive, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "profile", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) SendVerificationCode(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "send-otp", nil, nil, nil)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, otp string) error {
	return c.do(ctx, http.MethodPost, "verify-email", nil, map[string]string{"otp": otp}, nil)
}

func (c *HTTPClient) SendResetCode(ctx context.Context, email string) error {
	// The backend takes the address as a query parameter here, not a body.
	query := url.Values{"email": []string{email}}
	return c.do(ctx, http.MethodPost, "send-reset-otp", query, nil, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "reset-password", nil, body, nil)
}

// errorEnvelope is the backend's failure body: {"error": true, "message": "..."}.
type errorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// do issues one request and decodes a JSON response into out (when non-nil).
// Failures come back as *Error; the server message, when present, is carried
// verbatim for the presentation layer.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &Error{Kind: KindNetwork, Message: "cannot reach server", cause: err}
	}
	defer resp.Body.Close()

	if len(resp.Cookies()) > 0 && c.statePath != "" {
		if err := c.saveState(); err != nil {
			c.log.Warn(ctx, "could not persist client state", "path", c.statePath, "error", err)
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindUnknown, Message: "unexpected server response", cause: err}
		}
		return nil
	}

	var envelope errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	message := envelope.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	apiErr := &Error{Kind: kindForStatus(resp.StatusCode), Message: message}
	c.log.Debug(ctx, "request rejected", "method", method, "path", path,
		"request_id", requestID, "status", resp.StatusCode, "kind", apiErr.Kind.String())
	return apiErr
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusConflict:
		return KindConflict
	default:
		return KindUnknown
	}
}
