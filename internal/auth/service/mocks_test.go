package service_test

import (
	"context"

	userdomain "github.com/moviebase/moviebase/internal/user/domain"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	updateFunc         func(ctx context.Context, user userdomain.User) error
	deleteFunc         func(ctx context.Context, username string) error
	addFavoriteFunc    func(ctx context.Context, username, movieID string) error
	removeFavoriteFunc func(ctx context.Context, username, movieID string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user userdomain.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, username string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, username)
	}
	return nil
}

func (m *mockUserRepo) AddFavorite(ctx context.Context, username, movieID string) error {
	if m.addFavoriteFunc != nil {
		return m.addFavoriteFunc(ctx, username, movieID)
	}
	return nil
}

func (m *mockUserRepo) RemoveFavorite(ctx context.Context, username, movieID string) error {
	if m.removeFavoriteFunc != nil {
		return m.removeFavoriteFunc(ctx, username, movieID)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}
