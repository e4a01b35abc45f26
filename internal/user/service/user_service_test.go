package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moviebase/moviebase/internal/common/clock"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
	"github.com/moviebase/moviebase/internal/user/service"
)

type mockRepo struct {
	createFunc         func(ctx context.Context, user domain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
	updateFunc         func(ctx context.Context, user domain.User) error
	deleteFunc         func(ctx context.Context, username string) error
	addFavoriteFunc    func(ctx context.Context, username, movieID string) error
	removeFavoriteFunc func(ctx context.Context, username, movieID string) error
}

func (m *mockRepo) Create(ctx context.Context, user domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockRepo) Update(ctx context.Context, user domain.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, username string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, username)
	}
	return nil
}

func (m *mockRepo) AddFavorite(ctx context.Context, username, movieID string) error {
	if m.addFavoriteFunc != nil {
		return m.addFavoriteFunc(ctx, username, movieID)
	}
	return nil
}

func (m *mockRepo) RemoveFavorite(ctx context.Context, username, movieID string) error {
	if m.removeFavoriteFunc != nil {
		return m.removeFavoriteFunc(ctx, username, movieID)
	}
	return nil
}

type mockHasher struct {
	hashFunc func(password string) (string, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	return nil
}

type mockIDGenerator struct{}

func (m *mockIDGenerator) NewID() (string, error) {
	return "id-123", nil
}

func setupService(t *testing.T) (*service.Service, *mockRepo, *mockHasher) {
	t.Helper()

	repo := &mockRepo{}
	hasher := &mockHasher{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc := service.NewService(repo, hasher, &mockIDGenerator{}, mockClock, logger.NewDiscard())

	return svc, repo, hasher
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo, _ := setupService(t)

	var created domain.User
	repo.createFunc = func(ctx context.Context, user domain.User) error {
		created = user
		return nil
	}

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice5",
		Password: "Secr3t!",
		Email:    "a@b.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.PasswordHash != "hashed:Secr3t!" {
		t.Errorf("stored hash %q, want the hasher output", created.PasswordHash)
	}
	if created.PasswordHash == "Secr3t!" {
		t.Error("plaintext password reached the store")
	}
	if user.Username != "alice5" {
		t.Errorf("expected username alice5, got %s", user.Username)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.createFunc = func(ctx context.Context, user domain.User) error {
		t.Error("create must not run for invalid input")
		return nil
	}

	inputs := []service.RegisterInput{
		{Username: "ab", Password: "Secr3t!", Email: "a@b.com"},       // username too short
		{Username: "alice!", Password: "Secr3t!", Email: "a@b.com"},   // non-alphanumeric
		{Username: "alice5", Password: "short", Email: "a@b.com"},     // password too short
		{Username: "alice5", Password: "Secr3t!", Email: "not-email"}, // bad email
		{Username: "", Password: "Secr3t!", Email: "a@b.com"},
	}

	for _, input := range inputs {
		_, err := svc.Register(context.Background(), input)
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", input, err)
		}
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.createFunc = func(ctx context.Context, user domain.User) error {
		return userrepo.ErrUsernameAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice5",
		Password: "Secr3t!",
		Email:    "a@b.com",
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUpdate_PartialFieldsKeepStoredValues(t *testing.T) {
	svc, repo, _ := setupService(t)

	birthday := time.Date(1990, 5, 4, 0, 0, 0, 0, time.UTC)
	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{
			ID:           "id-123",
			Username:     "alice5",
			PasswordHash: "old-hash",
			Email:        "a@b.com",
			Birthday:     &birthday,
		}, nil
	}

	var updated domain.User
	repo.updateFunc = func(ctx context.Context, user domain.User) error {
		updated = user
		return nil
	}

	_, err := svc.Update(context.Background(), "alice5", service.UpdateInput{
		Email: "new@b.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if updated.Email != "new@b.com" {
		t.Errorf("email not updated: %q", updated.Email)
	}
	if updated.PasswordHash != "old-hash" {
		t.Errorf("password hash changed without a new password: %q", updated.PasswordHash)
	}
	if updated.Birthday == nil || !updated.Birthday.Equal(birthday) {
		t.Errorf("birthday changed: %v", updated.Birthday)
	}
	if updated.Username != "alice5" {
		t.Errorf("username must be immutable, got %q", updated.Username)
	}
}

func TestUpdate_NewPasswordIsRehashed(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{Username: "alice5", PasswordHash: "old-hash"}, nil
	}

	var updated domain.User
	repo.updateFunc = func(ctx context.Context, user domain.User) error {
		updated = user
		return nil
	}

	_, err := svc.Update(context.Background(), "alice5", service.UpdateInput{
		Password: "NewSecr3t!",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if updated.PasswordHash != "hashed:NewSecr3t!" {
		t.Errorf("expected rehashed password, got %q", updated.PasswordHash)
	}
}

func TestDelete_UnknownUser(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.deleteFunc = func(ctx context.Context, username string) error {
		return userrepo.ErrUserNotFound
	}

	err := svc.Delete(context.Background(), "nobody")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddFavorite_UnknownMovie(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.addFavoriteFunc = func(ctx context.Context, username, movieID string) error {
		return userrepo.ErrUnknownMovie
	}

	_, err := svc.AddFavorite(context.Background(), "alice5", "movie-404")
	if !errors.Is(err, service.ErrUnknownMovie) {
		t.Fatalf("expected ErrUnknownMovie, got %v", err)
	}
}

func TestAddFavorite_ReturnsUpdatedUser(t *testing.T) {
	svc, repo, _ := setupService(t)

	repo.addFavoriteFunc = func(ctx context.Context, username, movieID string) error {
		return nil
	}
	repo.findByUsernameFunc = func(ctx context.Context, username string) (domain.User, error) {
		return domain.User{Username: username, FavoriteMovies: []string{"movie-1"}}, nil
	}

	user, err := svc.AddFavorite(context.Background(), "alice5", "movie-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(user.FavoriteMovies) != 1 || user.FavoriteMovies[0] != "movie-1" {
		t.Errorf("expected favorites [movie-1], got %v", user.FavoriteMovies)
	}
}
