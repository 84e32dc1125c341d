package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Pair is an access/refresh token pair as returned by the backend's login
// and refresh exchanges. An empty RefreshToken means the backend did not
// rotate it.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Plan is the subscription tier embedded in an access token's claims.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// Expiration extracts the exp claim from a token without verifying its
// signature - verification is the server's job, this is a local,
// non-authoritative read. Returns false on any malformed input.
func Expiration(rawToken string) (time.Time, bool) {
	claims, ok := decode(rawToken)
	if !ok {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether the token's expiry is at or before now. A token
// without a readable exp claim is treated as expired.
func IsExpired(rawToken string, now time.Time) bool {
	exp, ok := Expiration(rawToken)
	if !ok {
		return true
	}
	return !exp.After(now)
}

// PlanOf extracts the plan claim from an access token. Any decode failure or
// missing claim degrades to PlanFree rather than an error, so a corrupt
// token gates like an anonymous one.
func PlanOf(rawToken string) Plan {
	claims, ok := decode(rawToken)
	if !ok {
		return PlanFree
	}

	if plan, ok := claims["plan"].(string); ok && Plan(plan) == PlanPremium {
		return PlanPremium
	}
	return PlanFree
}

func decode(rawToken string) (jwt.MapClaims, bool) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, false
	}

	parsedToken, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
