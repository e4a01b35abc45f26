package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/moviebase/moviebase/internal/user/domain"
)

var (
	// ErrUserNotFound means the username has no record. It is deliberately
	// distinct from infrastructure faults: a store timeout must never be
	// reported as an unknown user.
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUnknownMovie          = errors.New("unknown movie")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) error
	RemoveFavorite(ctx context.Context, username, movieID string) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, password_hash, email, birthday) VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, email, birthday, created_at FROM users WHERE username = $1`,
		username,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Birthday, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user by username: %w", err)
	}

	favorites, err := r.listFavorites(ctx, string(user.ID))
	if err != nil {
		return domain.User{}, err
	}
	user.FavoriteMovies = favorites

	return user, nil
}

func (r *PgRepository) Update(ctx context.Context, user domain.User) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET password_hash = $2, email = $3, birthday = $4 WHERE username = $1`,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PgRepository) AddFavorite(ctx context.Context, username, movieID string) error {
	// Idempotent: adding an already-favorited movie is not an error.
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO user_favorites (user_id, movie_id)
		 SELECT u.id, $2 FROM users u WHERE u.username = $1
		 ON CONFLICT (user_id, movie_id) DO NOTHING`,
		username,
		movieID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownMovie
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *PgRepository) RemoveFavorite(ctx context.Context, username, movieID string) error {
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM user_favorites
		 WHERE movie_id = $2 AND user_id = (SELECT id FROM users WHERE username = $1)`,
		username,
		movieID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *PgRepository) listFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT movie_id FROM user_favorites WHERE user_id = $1 ORDER BY added_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []string
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, movieID)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return favorites, nil
}
