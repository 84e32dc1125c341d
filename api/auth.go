package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/jrsteele09/go-recipes-client/session"
	"github.com/jrsteele09/go-recipes-client/token"
)

var _ session.Backend = (*AuthClient)(nil)

// AuthClient calls the credential-exchange endpoints. It deliberately does
// not go through the gateway: these endpoints are unauthenticated, and the
// session manager is the one driving them.
type AuthClient struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// AuthOption modifies the AuthClient configuration.
type AuthOption func(*AuthClient)

// WithAuthHTTPClient replaces the underlying HTTP client.
func WithAuthHTTPClient(httpClient *http.Client) AuthOption {
	return func(a *AuthClient) {
		a.http = httpClient
	}
}

// WithAuthLogger sets the logger. The default discards everything.
func WithAuthLogger(log zerolog.Logger) AuthOption {
	return func(a *AuthClient) {
		a.log = log
	}
}

// NewAuthClient creates a client for the /auth endpoints rooted at baseURL.
func NewAuthClient(baseURL string, options ...AuthOption) (*AuthClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[api.NewAuthClient] baseURL is required")
	}

	a := &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login exchanges credentials for a token pair. A rejection carries the
// backend's own message so the form can show it to the user.
func (a *AuthClient) Login(ctx context.Context, email, password string) (token.Pair, error) {
	var resp tokenResponse
	if err := a.post(ctx, "/auth/login", credentialsRequest{Email: email, Password: password}, &resp, "Login failed"); err != nil {
		return token.Pair{}, err
	}
	return token.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// Register creates an account. It yields no session; callers log in after.
func (a *AuthClient) Register(ctx context.Context, email, password string) error {
	return a.post(ctx, "/auth/register", credentialsRequest{Email: email, Password: password}, nil, "Registration failed")
}

// Refresh exchanges a refresh token for a new pair.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	var resp tokenResponse
	if err := a.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &resp, "Token refresh failed"); err != nil {
		return token.Pair{}, err
	}
	return token.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

func (a *AuthClient) post(ctx context.Context, path string, body, out interface{}, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "POST %s: encoding request body", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	req.Header.Set("Content-Type", "application/json")

	a.log.Debug().Str("path", path).Msg("auth: request")

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return errors.New(detailMessage(raw, fallback))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "POST %s: decoding response", path)
	}
	return nil
}

// detailMessage pulls the human-readable message out of the backend's error
// envelope: either a plain "detail" string or a list of validation entries,
// each with a "msg". Anything unreadable falls back to the generic message.
func detailMessage(body []byte, fallback string) string {
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		for _, entry := range detail.Array() {
			if msg := entry.Get("msg").String(); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}
	return fallback
}
