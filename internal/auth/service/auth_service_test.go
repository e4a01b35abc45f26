package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moviebase/moviebase/internal/auth/service"
	"github.com/moviebase/moviebase/internal/common/clock"
	"github.com/moviebase/moviebase/internal/common/constants"
	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	"github.com/moviebase/moviebase/internal/common/logger"
	userdomain "github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *clock.MockClock) {
	t.Helper()

	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := service.NewTokenIssuer(testSecret, constants.TokenTTL, mockClock)
	svc := service.NewAuthService(repo, hasher, issuer, logger.NewDiscard())

	return svc, repo, hasher, mockClock
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, hasher, mockClock := setupAuthService(t)

	username := "testuser"
	password := "password123"
	hashedPassword := "hashed_password123"

	repo.findByUsernameFunc = func(ctx context.Context, uname string) (userdomain.User, error) {
		if uname != username {
			t.Errorf("expected username %s, got %s", username, uname)
		}
		return userdomain.User{
			ID:           "user-123",
			Username:     username,
			PasswordHash: hashedPassword,
			Email:        "test@example.com",
			CreatedAt:    mockClock.Now(),
		}, nil
	}

	hasher.compareFunc = func(hash string, pwd string) error {
		if hash != hashedPassword || pwd != password {
			return errors.New("password mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Username: username,
		Password: password,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token == "" {
		t.Error("expected token to be set")
	}

	if result.User.Username != username {
		t.Errorf("expected user %s, got %s", username, result.User.Username)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "nobody",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrUnknownUsername) {
		t.Fatalf("expected ErrUnknownUsername, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{
			ID:           "user-123",
			Username:     "testuser",
			PasswordHash: "hashed",
		}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "testuser",
		Password: "wrongpass",
	})

	if !errors.Is(err, service.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

// The boundary message must not distinguish an unknown username from a wrong
// password, even though the internal codes differ.
func TestAuthService_Login_RejectionMessagesCollapse(t *testing.T) {
	unknown, _ := commonerrors.AsDomainError(service.ErrUnknownUsername)
	wrong, _ := commonerrors.AsDomainError(service.ErrWrongPassword)

	if unknown.Message() != wrong.Message() {
		t.Errorf("rejection messages differ: %q vs %q", unknown.Message(), wrong.Message())
	}
	if unknown.HTTPStatus() != wrong.HTTPStatus() {
		t.Errorf("rejection statuses differ: %d vs %d", unknown.HTTPStatus(), wrong.HTTPStatus())
	}
	if unknown.Code() == wrong.Code() {
		t.Error("internal codes must stay distinguishable")
	}
	if errors.Is(service.ErrUnknownUsername, service.ErrWrongPassword) {
		t.Error("sentinels must not match each other")
	}
}

func TestAuthService_Login_MalformedCredential(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	for _, input := range []service.LoginInput{
		{Username: "", Password: "password123"},
		{Username: "testuser", Password: ""},
	} {
		_, err := svc.Login(context.Background(), input)
		if !errors.Is(err, service.ErrMalformedCredential) {
			t.Errorf("input %+v: expected ErrMalformedCredential, got %v", input, err)
		}
	}
}

// A store fault must surface as a server fault, never as a credential
// rejection.
func TestAuthService_Login_StoreFault(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection reset")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "testuser",
		Password: "password123",
	})

	if errors.Is(err, service.ErrUnknownUsername) || errors.Is(err, service.ErrWrongPassword) {
		t.Fatalf("store fault reported as credential rejection: %v", err)
	}
	if !errors.Is(err, commonerrors.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
