// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/parley-tui/internal/storage"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the base URL of a local parley backend.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultRatePerSec is the default client-side request rate limit.
	DefaultRatePerSec = 5

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// ERRORS
// =============================================================================

// APIError is a normalized backend error: the HTTP status plus the
// backend's message field (or a generic fallback when the body is not
// parseable).
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == status
}

// =============================================================================
// CLIENT
// =============================================================================

// Client communicates with the parley backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	store      *storage.Store
	userAgent  string
}

// NewClient creates a backend client. The store is used to keep the
// volatile active-session pointer in step with session lifecycle
// calls; it may be nil for callers that do not track one.
func NewClient(baseURL string, store *storage.Store) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRatePerSec), DefaultRatePerSec),
		store:      store,
		userAgent:  "parley/1.0",
	}
}

// WithTimeout sets the request timeout. A dedicated HTTP client is
// used so the shared pool's timeout is not mutated.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithRateLimit sets the client-side request rate limit.
func (c *Client) WithRateLimit(perSec float64) *Client {
	if perSec <= 0 {
		perSec = DefaultRatePerSec
	}
	burst := int(perSec)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// logRequest logs an API request without exposing sensitive data.
// Bodies may contain passwords or message content; never log them.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status code and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// do performs one HTTP request: rate-limit, send, log, read the body
// with a size cap. The caller owns status handling.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) (*http.Response, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	c.logResponse(resp, time.Since(start))
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// doJSON performs a request, normalizes error statuses, and decodes a
// 2xx body into out (out may be nil for calls with no useful body).
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	resp, body, err := c.do(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	if err := checkResponse(resp, body); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// checkResponse normalizes a non-2xx response into *APIError. The
// backend reports failures as {"message": "..."}; anything else gets
// the generic fallback.
func checkResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errBody messageResponse
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}
	return &APIError{Status: resp.StatusCode, Message: "an unknown error occurred"}
}

// =============================================================================
// USER OPERATIONS
// =============================================================================

// CreateUser registers a new account and returns the created user.
func (c *Client) CreateUser(ctx context.Context, email, password, name string) (*User, error) {
	var out userCreateResponse
	err := c.doJSON(ctx, http.MethodPost, "/users", userCreateRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &User{ID: out.ID, Email: out.Email, Name: out.Name}, nil
}

// ValidateUser checks credentials and returns the matching user.
//
// The backend answers 200 with is_valid=false for bad credentials;
// that case is surfaced as an *APIError with status 401 so callers
// handle both rejection shapes the same way.
func (c *Client) ValidateUser(ctx context.Context, email, password string) (*User, error) {
	var out userValidateResponse
	err := c.doJSON(ctx, http.MethodPost, "/users/validate", userValidateRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if !out.IsValid {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: out.Message}
	}
	return &User{ID: out.ID, Email: out.Email, Name: out.Name}, nil
}

// GetUser fetches a user by id. This endpoint decodes the body
// directly without error normalization, matching the backend's
// historical behavior of always answering 200 with a user object.
func (c *Client) GetUser(ctx context.Context, userID int) (*User, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(userID), nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &u, nil
}

// UpdatePassword changes the account password, verifying the old one.
func (c *Client) UpdatePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	path := "/users/" + strconv.Itoa(userID) + "/password"
	return c.doJSON(ctx, http.MethodPatch, path, passwordUpdateRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// ListSessions returns all sessions belonging to the user. A missing
// sessions field decodes as an empty (non-nil) slice.
func (c *Client) ListSessions(ctx context.Context, userID int) ([]Session, error) {
	var out sessionListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/"+strconv.Itoa(userID), nil, &out); err != nil {
		return nil, err
	}
	if out.Sessions == nil {
		return []Session{}, nil
	}
	return out.Sessions, nil
}

// CreateSession creates a session for the user and returns its token.
// The new token also becomes the stored active-session pointer.
func (c *Client) CreateSession(ctx context.Context, userID int, title string) (string, error) {
	var out sessionCreateResponse
	err := c.doJSON(ctx, http.MethodPost, "/sessions", sessionCreateRequest{
		UserID: userID,
		Title:  title,
	}, &out)
	if err != nil {
		return "", err
	}
	if c.store != nil {
		c.store.SetSessionToken(out.SessionToken)
	}
	return out.SessionToken, nil
}

// DeleteSession deletes the session. When the deleted token is the
// stored active-session pointer, the pointer is cleared.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/sessions/"+token, nil, nil); err != nil {
		return err
	}
	if c.store != nil && c.store.SessionToken() == token {
		c.store.ClearSessionToken()
	}
	return nil
}

// RenameSession sets the session's user-visible short name.
func (c *Client) RenameSession(ctx context.Context, token, name string) error {
	return c.doJSON(ctx, http.MethodPatch, "/sessions/"+token+"/name", sessionRenameRequest{
		SessionShortName: name,
	}, nil)
}

// GenerateSessionName asks the backend to derive a title for the
// session from the given topic and returns the generated name.
func (c *Client) GenerateSessionName(ctx context.Context, token, topic string) (string, error) {
	var out sessionNameResponse
	err := c.doJSON(ctx, http.MethodPost, "/sessions/"+token+"/name", sessionNameRequest{
		Topic: topic,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.SessionName, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// requireAuth fails fast with a 401 APIError when no user identity is
// stored, before any network traffic.
func (c *Client) requireAuth() error {
	if c.store != nil && !c.store.IsAuthenticated() {
		return &APIError{Status: http.StatusUnauthorized, Message: "user not authenticated"}
	}
	return nil
}

// GetMessages returns the session's message history, oldest first.
// A missing messages field decodes as an empty (non-nil) slice.
func (c *Client) GetMessages(ctx context.Context, token string) ([]Message, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	var out messageListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chat/"+token, nil, &out); err != nil {
		return nil, err
	}
	if out.Messages == nil {
		return []Message{}, nil
	}
	return out.Messages, nil
}

// SendMessage posts a human message and returns the AI reply as a
// Message. The backend responds with bare text; the id and timestamp
// are synthesized client-side.
func (c *Client) SendMessage(ctx context.Context, token, text string) (Message, error) {
	if err := c.requireAuth(); err != nil {
		return Message{}, err
	}
	var out chatResponse
	err := c.doJSON(ctx, http.MethodPost, "/chat", chatRequest{
		SessionToken: token,
		Message:      text,
	}, &out)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Text:      out.Response,
		Sender:    SenderAI,
		Timestamp: time.Now().Format("15:04"),
	}, nil
}
