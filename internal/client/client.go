// Package client talks to the DDMS API on behalf of an operator. It
// owns the session context, renews access tokens once per request when
// the server answers 401, and refuses receipt transitions the lifecycle
// does not allow before any request is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/ddms-api/pkg/ddms"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	pathLogin   = "/auth/login"
	pathRefresh = "/auth/refresh"
	pathLogout  = "/auth/logout"
	pathSendOTP = "/auth/send-otp"
)

// Config configures a Client.
type Config struct {
	// BaseURL includes the API prefix, e.g. http://localhost:8080/api/v1.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

// Client is a DDMS API client bound to one Session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     *zap.SugaredLogger
	refresh singleflight.Group
}

// New returns a client for cfg.BaseURL.
func New(cfg Config, session *Session) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		session: session,
		log:     cfg.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	if c.session == nil {
		c.session = NewSession()
	}
	return c, nil
}

// Session returns the session the client acts for.
func (c *Client) Session() *Session {
	return c.session
}

type request struct {
	method  string
	path    string
	query   url.Values
	body    []byte
	headers map[string]string
}

func isAuthEndpoint(path string) bool {
	switch path {
	case pathLogin, pathRefresh, pathLogout, pathSendOTP:
		return true
	}
	return false
}

func (c *Client) newRequest(method, path string, query url.Values, body any) (*request, error) {
	r := &request{method: method, path: path, query: query}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r.body = b
	}
	return r, nil
}

// do sends r and decodes DDMS_data into out. A 401 on a non-auth
// endpoint triggers exactly one token refresh followed by one retry.
func (c *Client) do(ctx context.Context, r *request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthEndpoint(r.path) {
		resp.Body.Close()
		if err := c.renew(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, r)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			c.forceLogout(ctx)
			return ErrSessionExpired
		}
	}
	defer resp.Body.Close()

	return c.decode(ctx, r, resp, out)
}

func (c *Client) send(ctx context.Context, r *request) (*http.Response, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != nil && tok.AccessToken != "" {
		tok.SetAuthHeader(req)
	}
	if store, ok := c.session.CurrentStore(); ok {
		req.Header.Set(ddms.HeaderStoreID, store.ID)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

func (c *Client) decode(ctx context.Context, r *request, resp *http.Response, out any) error {
	var env ddms.Envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if !isAuthEndpoint(r.path) && ddms.IsLoggedOut(env.LoginStatus) {
		c.forceLogout(ctx)
		return ErrAuthenticationRequired
	}

	if env.Status == ddms.StatusError || resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Code: env.ErrorCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode DDMS_data: %w", err)
	}
	return nil
}

type tokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// renew exchanges the refresh token for a new pair. Concurrent callers
// holding the same refresh token share one exchange.
func (c *Client) renew(ctx context.Context) error {
	tok := c.session.Token()
	if !c.session.IsAuthenticated() || tok == nil || tok.RefreshToken == "" {
		c.forceLogout(ctx)
		return ErrAuthenticationRequired
	}

	_, err, _ := c.refresh.Do(tok.RefreshToken, func() (interface{}, error) {
		r, err := c.newRequest(http.MethodPost, pathRefresh, nil, map[string]string{"refreshToken": tok.RefreshToken})
		if err != nil {
			return nil, err
		}
		var pair tokenPair
		if err := c.doRaw(ctx, r, &pair); err != nil {
			return nil, err
		}
		if pair.Token == "" {
			return nil, errors.New("refresh response carried no token")
		}
		if !c.session.swapTokens(pair.Token, pair.RefreshToken) {
			return nil, ErrAuthenticationRequired
		}
		return nil, nil
	})
	if err != nil {
		c.log.Warnw("token refresh failed", "error", err)
		c.forceLogout(ctx)
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return nil
}

// doRaw sends r without the refresh-and-retry step.
func (c *Client) doRaw(ctx context.Context, r *request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.decode(ctx, r, resp, out)
}

func (c *Client) forceLogout(ctx context.Context) {
	_ = c.Logout(ctx)
}

// Logout ends the session. The remote call is best effort: local state
// is cleared and logout hooks run whatever its outcome. Calling Logout
// again is harmless.
func (c *Client) Logout(ctx context.Context) error {
	var remoteErr error
	if c.session.IsAuthenticated() {
		r, _ := c.newRequest(http.MethodPost, pathLogout, nil, nil)
		if remoteErr = c.doRaw(ctx, r, nil); remoteErr != nil {
			c.log.Warnw("logout request failed", "error", remoteErr)
		}
	}
	c.session.clear()
	return remoteErr
}
