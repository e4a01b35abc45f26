package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moviebase/moviebase/internal/common/clock"
	"github.com/moviebase/moviebase/internal/common/crypto"
	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/observability/metrics"
	"github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
)

// Service owns principal records: registration, profile reads and updates,
// deregistration and the favorites list. Plaintext passwords are hashed here
// and discarded; they never reach the repository.
type Service struct {
	repo     userrepo.Repository
	hasher   crypto.PasswordHasher
	idGen    crypto.IDGenerator
	clock    clock.Clock
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(
	repo userrepo.Repository,
	hasher crypto.PasswordHasher,
	idGen crypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clk,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

type RegisterInput struct {
	Username string `validate:"required,min=3,max=32,alphanum"`
	Password string `validate:"required,min=6,max=72"`
	Email    string `validate:"required,email"`
	Birthday *time.Time
}

type UpdateInput struct {
	Password string `validate:"omitempty,min=6,max=72"`
	Email    string `validate:"omitempty,email"`
	Birthday *time.Time
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := s.validate.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return domain.User{}, ErrValidation.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return domain.User{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           domain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Birthday:     input.Birthday,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return domain.User{}, ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return domain.User{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"action":   "register_success",
	}).Info("register success")

	return user, nil
}

func (s *Service) Get(ctx context.Context, username string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, s.mapStoreError(ctx, username, "get", err)
	}
	return user, nil
}

// Update changes email, birthday and/or password. Absent fields keep their
// stored values; the username itself is immutable.
func (s *Service) Update(ctx context.Context, username string, input UpdateInput) (domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.User{}, ErrValidation.WithCause(err)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, s.mapStoreError(ctx, username, "update_fetch", err)
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "update_hash_failed",
			}).Errorf("update failed: password hash error: %v", err)
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return domain.User{}, s.mapStoreError(ctx, username, "update", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "update_success",
	}).Info("profile updated")

	return user, nil
}

func (s *Service) Delete(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return s.mapStoreError(ctx, username, "delete", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "deregister_success",
	}).Info("user deregistered")

	return nil
}

func (s *Service) AddFavorite(ctx context.Context, username, movieID string) (domain.User, error) {
	if err := s.repo.AddFavorite(ctx, username, movieID); err != nil {
		if errors.Is(err, userrepo.ErrUnknownMovie) {
			return domain.User{}, ErrUnknownMovie
		}
		return domain.User{}, s.mapStoreError(ctx, username, "add_favorite", err)
	}
	return s.Get(ctx, username)
}

func (s *Service) RemoveFavorite(ctx context.Context, username, movieID string) (domain.User, error) {
	if err := s.repo.RemoveFavorite(ctx, username, movieID); err != nil {
		return domain.User{}, s.mapStoreError(ctx, username, "remove_favorite", err)
	}
	return s.Get(ctx, username)
}

func (s *Service) mapStoreError(ctx context.Context, username, action string, err error) error {
	if errors.Is(err, userrepo.ErrUserNotFound) {
		return ErrUserNotFound
	}
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   action + "_failed",
	}).Errorf("store operation failed: %v", err)
	return commonerrors.ErrStoreUnavailable.WithCause(err)
}
