// Package api talks to the recipe backend: an authenticated request gateway
// plus typed clients for every resource, and a sessionless client for the
// credential exchanges.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Session is the slice of the session manager the gateway needs: the current
// credential, a way to renew it, and a way to tear the session down when
// renewal fails.
type Session interface {
	AccessToken() string
	RefreshSession(ctx context.Context) (string, bool)
	Logout(ctx context.Context)
}

const defaultRequestTimeout = 30 * time.Second

// Client is the authenticated request gateway. Every resource call goes
// through do, which attaches the bearer token and performs the single
// 401-refresh-retry sequence.
type Client struct {
	baseURL string
	session Session
	http    *http.Client
	log     zerolog.Logger
}

// ClientOption modifies the Client configuration.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger sets the request logger. The default discards everything.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a gateway rooted at baseURL, authenticated by session.
func NewClient(baseURL string, session Session, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[api.NewClient] baseURL is required")
	}
	if session == nil {
		return nil, errors.New("[api.NewClient] session is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// do performs one gated request. On a 401 it asks the session for one
// refresh and retries once with the new token; a second 401, or a refresh
// that yields nothing, ends the session. A 204 leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s %s: encoding request body", method, path)
		}
		payload = encoded
	}

	requestID := uuid.New().String()

	resp, err := c.send(ctx, method, path, payload, c.session.AccessToken(), requestID)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)

		renewedToken, ok := c.session.RefreshSession(ctx)
		if !ok {
			c.session.Logout(ctx)
			return ErrSessionExpired
		}

		c.log.Debug().Str("request_id", requestID).Msg("api: retrying after token refresh")
		resp, err = c.send(ctx, method, path, payload, renewedToken, requestID)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			discard(resp)
			c.session.Logout(ctx)
			return ErrSessionExpired
		}
	}

	return decodeResponse(resp, method, path, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken, requestID string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Msg("api: request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, method, path string, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "%s %s: decoding response", method, path)
	}
	return nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
