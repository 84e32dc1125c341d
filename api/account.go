package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-recipes-client/token"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updatePlanRequest struct {
	Plan token.Plan `json:"plan"`
}

type premiumCheckResponse struct {
	Message string `json:"message"`
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/account/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ChangePassword rotates the account password. The session stays valid.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, "/account/password", body, nil)
}

// PremiumCheck probes the premium-only gate. Free accounts receive a 403,
// surfaced as an *APIError.
func (c *Client) PremiumCheck(ctx context.Context) (string, error) {
	var resp premiumCheckResponse
	if err := c.do(ctx, http.MethodGet, "/account/premium-check", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdatePlan switches the subscription tier. The backend issues a fresh
// token pair carrying the new plan claim; hand it to the session manager's
// UpdateTokens so gating takes effect without a re-login.
func (c *Client) UpdatePlan(ctx context.Context, plan token.Plan) (token.Pair, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPut, "/account/plan", updatePlanRequest{Plan: plan}, &resp); err != nil {
		return token.Pair{}, err
	}
	return token.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}
