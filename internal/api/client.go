package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requestTimeout bounds every outgoing call; a request past it rejects
// as a transport failure, same as any other network error.
const requestTimeout = 10 * time.Second

// ErrNoSession indicates a 401 with no refresh token to recover with.
var ErrNoSession = errors.New("no active session")

// TokenStore is the persisted token storage the client reads on every
// request and writes after a successful refresh. It is the only shared
// mutable state the client touches; in-memory session state belongs to
// the session manager.
type TokenStore interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	SetTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// Client is the single point of outbound HTTP communication with the
// Sağlık Hep API. It attaches bearer credentials, performs a one-shot
// token refresh on 401 and replays the failed request once.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           TokenStore
	onSessionExpired func()

	maxUploadBytes    int64
	allowedExtensions []string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithSessionExpiredHook registers the callback invoked after an
// irrecoverable refresh failure, once local session data is cleared.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithUploadLimits overrides the client-side upload validation bounds.
func WithUploadLimits(maxBytes int64, extensions []string) Option {
	return func(c *Client) {
		if maxBytes > 0 {
			c.maxUploadBytes = maxBytes
		}
		if normalized := normalizeExtensions(extensions); len(normalized) > 0 {
			c.allowedExtensions = normalized
		}
	}
}

// NewClient constructs an API client rooted at baseURL.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:           strings.TrimRight(baseURL, "/"),
		httpClient:        &http.Client{Timeout: requestTimeout},
		tokens:            tokens,
		maxUploadBytes:    defaultMaxUploadBytes,
		allowedExtensions: defaultExtensions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// bodyFunc rebuilds the request body so a 401 replay can resend it.
type bodyFunc func() (io.Reader, string, error)

func jsonBody(payload any) bodyFunc {
	if payload == nil {
		return nil
	}
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// doJSON issues one request with the persisted access token attached.
// A 401 on a request that has not yet been retried triggers exactly one
// refresh call and, on refresh success, exactly one replay with the new
// access token; the replay's outcome is final either way. Non-401
// errors and transport failures propagate unchanged.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	return c.do(ctx, method, path, query, jsonBody(payload), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body bodyFunc, out any) error {
	access, refresh, err := c.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	err = c.attempt(ctx, method, path, query, body, out, access)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}
	access, err = c.refreshSession(ctx, refresh)
	if err != nil {
		return err
	}
	return c.attempt(ctx, method, path, query, body, out, access)
}

// refreshSession rotates the token pair using the persisted refresh
// token. Failure is fatal to the session: persisted session data is
// cleared unconditionally and the expiry hook fires (the caller's
// original request fails with the refresh error).
func (c *Client) refreshSession(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		c.expireSession(ctx)
		return "", ErrNoSession
	}
	payload := map[string]string{"refreshToken": refreshToken}
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.attempt(ctx, http.MethodPost, "/auth/refresh", nil, jsonBody(payload), &resp, ""); err != nil {
		slog.Warn("token refresh failed", "error", err)
		c.expireSession(ctx)
		return "", err
	}
	if err := c.tokens.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return "", err
	}
	slog.Debug("token pair rotated after 401")
	return resp.AccessToken, nil
}

func (c *Client) expireSession(ctx context.Context) {
	slog.Info("session expired, clearing local credentials")
	_ = c.tokens.Clear(ctx)
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// attempt performs a single HTTP round trip with no retry logic.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, body bodyFunc, out any, access string) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader
	contentType := ""
	if body != nil {
		var err error
		reader, contentType, err = body()
		if err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
