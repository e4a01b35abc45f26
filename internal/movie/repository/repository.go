package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/moviebase/moviebase/internal/movie/domain"
)

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrDirectorNotFound = errors.New("director not found")
)

type Repository interface {
	List(ctx context.Context) ([]domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (domain.Movie, error)
	FindGenre(ctx context.Context, name string) (domain.Genre, error)
	FindDirector(ctx context.Context, name string) (domain.Director, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const movieColumns = `m.id, m.title, m.description, m.image_path, m.featured,
	g.name, g.description,
	d.name, d.bio, d.birth_year, d.death_year`

const movieJoin = `FROM movies m
	JOIN genres g ON g.id = m.genre_id
	JOIN directors d ON d.id = m.director_id`

func (r *PgRepository) List(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+movieColumns+` `+movieJoin+` ORDER BY m.title ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return movies, nil
}

func (r *PgRepository) FindByTitle(ctx context.Context, title string) (domain.Movie, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+movieColumns+` `+movieJoin+` WHERE m.title = $1`,
		title,
	)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrMovieNotFound
		}
		return domain.Movie{}, fmt.Errorf("failed to find movie by title: %w", err)
	}

	return movie, nil
}

func (r *PgRepository) FindGenre(ctx context.Context, name string) (domain.Genre, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT name, description FROM genres WHERE name = $1`,
		name,
	)

	var genre domain.Genre
	if err := row.Scan(&genre.Name, &genre.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Genre{}, ErrGenreNotFound
		}
		return domain.Genre{}, fmt.Errorf("failed to find genre: %w", err)
	}

	return genre, nil
}

func (r *PgRepository) FindDirector(ctx context.Context, name string) (domain.Director, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT name, bio, birth_year, death_year FROM directors WHERE name = $1`,
		name,
	)

	var director domain.Director
	if err := row.Scan(&director.Name, &director.Bio, &director.BirthYear, &director.DeathYear); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Director{}, ErrDirectorNotFound
		}
		return domain.Director{}, fmt.Errorf("failed to find director: %w", err)
	}

	return director, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.ImagePath, &m.Featured,
		&m.Genre.Name, &m.Genre.Description,
		&m.Director.Name, &m.Director.Bio, &m.Director.BirthYear, &m.Director.DeathYear,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}
