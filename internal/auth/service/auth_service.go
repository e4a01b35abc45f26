package service

import (
	"context"
	"errors"

	"github.com/moviebase/moviebase/internal/common/crypto"
	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/observability/metrics"
	userdomain "github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
)

// AuthService is the credential authenticator: it reads and verifies
// principals, never creates or renames them. It holds no state between
// requests.
type AuthService struct {
	users  userrepo.Repository
	hasher crypto.PasswordHasher
	issuer *TokenIssuer
	log    *logger.Logger
}

func NewAuthService(
	users userrepo.Repository,
	hasher crypto.PasswordHasher,
	issuer *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		log:    log,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User  userdomain.User
	Token string
}

// Login runs the fixed sequence: store lookup, hash comparison, token
// issuance. A store fault is propagated as a server fault, never reported as
// an unknown user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	metrics.LoginAttemptsTotal.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if input.Username == "" || input.Password == "" {
		metrics.LoginFailuresTotal.WithLabelValues("malformed_credential").Inc()
		return LoginResult{}, ErrMalformedCredential
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginFailuresTotal.WithLabelValues("unknown_username").Inc()
			return LoginResult{}, ErrUnknownUsername
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginFailuresTotal.WithLabelValues("wrong_password").Inc()
		return LoginResult{}, ErrWrongPassword
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{User: user, Token: token}, nil
}
