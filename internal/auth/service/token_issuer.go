package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moviebase/moviebase/internal/common/clock"
	"github.com/moviebase/moviebase/internal/observability/metrics"
	userdomain "github.com/moviebase/moviebase/internal/user/domain"
)

// TokenIssuer mints self-contained HS256 tokens. Issuance leaves no record
// anywhere; validity is determined solely by signature and expiry.
type TokenIssuer struct {
	secret []byte
	clock  clock.Clock
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		clock:  clk,
		ttl:    ttl,
	}
}

func (ti *TokenIssuer) Issue(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"iat": now.Unix(),
		"exp": now.Add(ti.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.secret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}
