// Package apiclient is a typed HTTP client for the Wishlane API. It is the
// transport layer behind the terminal client and is also handy for smoke
// testing a deployed instance.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

const (
	apiPrefix                 = "/api/v1"
	errorBodyReadLimit  int64 = 4096
	defaultClientTimeout      = 15 * time.Second
)

var errBaseURLRequired = errors.New("api base url is required")

// Client wraps the Wishlane HTTP API. It holds the current token pair and
// attaches the access token to authenticated calls. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New builds a client against the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// SetTokens replaces the stored token pair, e.g. when restoring a saved session.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// Tokens returns the current token pair.
func (c *Client) Tokens() (accessToken, refreshToken string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// Authenticated reports whether the client holds an access token.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

// Session is the token pair plus account data returned by the auth endpoints.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// User mirrors the account payload embedded in auth responses.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Wish mirrors the wish payload returned by the wishes endpoints.
type Wish struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	Deadline    *string   `json:"deadline"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Register creates an account and stores the returned token pair.
func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	return c.openSession(ctx, "/auth/register", map[string]string{"email": email, "password": password})
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.openSession(ctx, "/auth/login", map[string]string{"email": email, "password": password})
}

// RequestMagicLink asks the server to email a sign-in link.
func (c *Client) RequestMagicLink(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/magic-link", map[string]string{"email": email}, false, nil)
}

// VerifyMagicLink redeems an emailed sign-in token and stores the session.
func (c *Client) VerifyMagicLink(ctx context.Context, token string) (*Session, error) {
	return c.openSession(ctx, "/auth/magic-link/verify", map[string]string{"token": token})
}

// Refresh rotates the stored token pair.
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	_, refresh := c.Tokens()
	if refresh == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "no refresh token held")
	}
	return c.openSession(ctx, "/auth/refresh", map[string]string{"refresh_token": refresh})
}

// Logout revokes the server-side session and clears the stored tokens.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, true, nil)
	if err != nil {
		return err
	}
	c.SetTokens("", "")
	return nil
}

// ListWishes fetches every wish owned by the signed-in user, in display order.
func (c *Client) ListWishes(ctx context.Context) ([]Wish, error) {
	var out []Wish
	if err := c.do(ctx, http.MethodGet, "/wishes", nil, true, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Wish{}
	}
	return out, nil
}

// CreateWish submits a new wish. Optional fields may be nil.
func (c *Client) CreateWish(ctx context.Context, draft WishDraft) (*Wish, error) {
	body := map[string]any{"title": draft.Title}
	if draft.Description != nil {
		body["description"] = *draft.Description
	}
	if draft.Category != nil {
		body["category"] = *draft.Category
	}
	if draft.Priority != nil {
		body["priority"] = *draft.Priority
	}
	if draft.Deadline != nil {
		body["deadline"] = *draft.Deadline
	}

	var out Wish
	if err := c.do(ctx, http.MethodPost, "/wishes", body, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWish applies a partial update and returns the stored record.
func (c *Client) UpdateWish(ctx context.Context, id uuid.UUID, patch *WishPatch) (*Wish, error) {
	var out Wish
	path := fmt.Sprintf("/wishes/%s", id)
	if err := c.do(ctx, http.MethodPatch, path, patch.body(), true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWish removes a wish.
func (c *Client) DeleteWish(ctx context.Context, id uuid.UUID) error {
	var out struct {
		Success bool `json:"success"`
	}
	path := fmt.Sprintf("/wishes/%s", id)
	return c.do(ctx, http.MethodDelete, path, nil, true, &out)
}

// WishDraft carries the fields accepted when creating a wish.
type WishDraft struct {
	Title       string
	Description *string
	Category    *string
	Priority    *string
	Deadline    *string
}

func (c *Client) openSession(ctx context.Context, path string, body any) (*Session, error) {
	// The refresh endpoint also wants the expiring access token as a bearer.
	authed := strings.HasSuffix(path, "/refresh")

	var session Session
	if err := c.do(ctx, http.MethodPost, path, body, authed, &session); err != nil {
		return nil, err
	}
	c.SetTokens(session.AccessToken, session.RefreshToken)
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.Tokens()
		if access == "" {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in")
		}
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return pkgerrors.New(pkgerrors.Code(envelope.Error.Code), envelope.Error.Message)
	}

	msg := strings.TrimSpace(string(raw))
	return pkgerrors.New(codeForStatus(resp.StatusCode), fmt.Sprintf("status %d: %s", resp.StatusCode, msg))
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	default:
		return pkgerrors.CodeDependency
	}
}
