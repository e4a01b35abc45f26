package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moviebase/moviebase/internal/common/clock"
	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/observability/metrics"
	userdomain "github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
)

// Every verifier rejection is a 401: the boundary never tells a caller which
// of the four internal reasons applied beyond "authenticate again".
var (
	ErrMissingCredentials = commonerrors.NewDomainError(
		"MISSING_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing or invalid authorization",
	)

	ErrInvalidToken = commonerrors.NewDomainError(
		"INVALID_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token",
	)

	ErrTokenExpired = commonerrors.NewDomainError(
		"TOKEN_EXPIRED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"token expired",
	)

	ErrUnknownPrincipal = commonerrors.NewDomainError(
		"UNKNOWN_PRINCIPAL",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token",
	)
)

// PrincipalStore resolves a token subject back to a live user record. The
// re-lookup guards against a user deleted after token issuance; the token is
// trusted for identity only.
type PrincipalStore interface {
	FindByUsername(ctx context.Context, username string) (userdomain.User, error)
}

type contextKey string

const principalKey contextKey = "principal"

type Verifier struct {
	secret []byte
	store  PrincipalStore
	clock  clock.Clock
	log    *logger.Logger
}

func NewVerifier(secret string, store PrincipalStore, clk clock.Clock, log *logger.Logger) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		store:  store,
		clock:  clk,
		log:    log,
	}
}

// ParseToken checks signature and expiry and returns the encoded username.
func (v *Verifier) ParseToken(tokenString string) (string, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return v.secret, nil
		},
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken.WithCause(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}

// Verify resolves a presented token to a principal: signature, expiry, then a
// store re-lookup so a deleted user cannot ride out an unexpired token.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (userdomain.User, error) {
	metrics.JWTValidationsTotal.Inc()

	username, err := v.ParseToken(tokenString)
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return userdomain.User{}, err
	}

	user, err := v.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.JWTValidationsFailed.Inc()
			return userdomain.User{}, ErrUnknownPrincipal
		}
		return userdomain.User{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	return user, nil
}

// Middleware gates every protected operation: the wrapped handler never runs
// unless a principal was resolved.
func (v *Verifier) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				v.log.Warnf("auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.HandleError(w, r, ErrMissingCredentials, v.log)
				return
			}

			user, err := v.Verify(r.Context(), strings.TrimPrefix(raw, "Bearer "))
			if err != nil {
				v.log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.HandleError(w, r, err, v.log)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), user)))
		})
	}
}

func ContextWithPrincipal(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

func FromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(principalKey).(userdomain.User)
	return user, ok
}
