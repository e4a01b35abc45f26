package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/movie/domain"
	"github.com/moviebase/moviebase/internal/movie/repository"
)

var (
	errMovieNotFound = commonerrors.NewDomainError(
		"MOVIE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"movie not found",
	)

	errGenreNotFound = commonerrors.NewDomainError(
		"GENRE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"genre not found",
	)

	errDirectorNotFound = commonerrors.NewDomainError(
		"DIRECTOR_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"director not found",
	)
)

type genreResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type directorResponse struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear int    `json:"birth_year"`
	DeathYear *int   `json:"death_year,omitempty"`
}

type movieResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Genre       genreResponse    `json:"genre"`
	Director    directorResponse `json:"director"`
	ImagePath   string           `json:"image_path,omitempty"`
	Featured    bool             `json:"featured"`
}

func newMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Genre:       genreResponse(m.Genre),
		Director: directorResponse{
			Name:      m.Director.Name,
			Bio:       m.Director.Bio,
			BirthYear: m.Director.BirthYear,
			DeathYear: m.Director.DeathYear,
		},
		ImagePath: m.ImagePath,
		Featured:  m.Featured,
	}
}

// Handler serves the read-only catalog. Queries are plain passthroughs to the
// store; all routes require a verified token but no ownership check.
type Handler struct {
	movies  repository.Repository
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(movies repository.Repository, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{movies: movies, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux, verify func(next http.Handler) http.Handler) {
	mux.Handle("GET /movies", verify(http.HandlerFunc(h.list)))
	mux.Handle("GET /movies/{title}", verify(http.HandlerFunc(h.getByTitle)))
	mux.Handle("GET /genres/{name}", verify(http.HandlerFunc(h.getGenre)))
	mux.Handle("GET /directors/{name}", verify(http.HandlerFunc(h.getDirector)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	movies, err := h.movies.List(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrStoreUnavailable.WithCause(err), h.log)
		return
	}

	resp := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, newMovieResponse(m))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) getByTitle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	movie, err := h.movies.FindByTitle(ctx, r.PathValue("title"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			commonhttp.HandleError(w, r, errMovieNotFound, h.log)
			return
		}
		commonhttp.HandleError(w, r, commonerrors.ErrStoreUnavailable.WithCause(err), h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newMovieResponse(movie))
}

func (h *Handler) getGenre(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	genre, err := h.movies.FindGenre(ctx, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			commonhttp.HandleError(w, r, errGenreNotFound, h.log)
			return
		}
		commonhttp.HandleError(w, r, commonerrors.ErrStoreUnavailable.WithCause(err), h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, genreResponse(genre))
}

func (h *Handler) getDirector(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	director, err := h.movies.FindDirector(ctx, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, repository.ErrDirectorNotFound) {
			commonhttp.HandleError(w, r, errDirectorNotFound, h.log)
			return
		}
		commonhttp.HandleError(w, r, commonerrors.ErrStoreUnavailable.WithCause(err), h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, directorResponse{
		Name:      director.Name,
		Bio:       director.Bio,
		BirthYear: director.BirthYear,
		DeathYear: director.DeathYear,
	})
}
