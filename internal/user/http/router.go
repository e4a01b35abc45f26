package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/user/domain"
	"github.com/moviebase/moviebase/internal/user/service"
)

const birthdayLayout = "2006-01-02"

// UserResponse is the only user shape that crosses the boundary; the password
// hash has no field here on purpose.
type UserResponse struct {
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Birthday       string    `json:"birthday,omitempty"`
	FavoriteMovies []string  `json:"favorite_movies"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewUserResponse(u domain.User) UserResponse {
	resp := UserResponse{
		Username:       u.Username,
		Email:          u.Email,
		FavoriteMovies: u.FavoriteMovies,
		CreatedAt:      u.CreatedAt,
	}
	if resp.FavoriteMovies == nil {
		resp.FavoriteMovies = []string{}
	}
	if u.Birthday != nil {
		resp.Birthday = u.Birthday.Format(birthdayLayout)
	}
	return resp
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

type updateUserRequest struct {
	Password string `json:"password"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

type Handler struct {
	users   *service.Service
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(users *service.Service, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{users: users, log: log, timeout: timeout}
}

// Register mounts the user routes. Registration is public; everything else
// sits behind the token verifier and the ownership gate, in that order.
func (h *Handler) Register(mux *http.ServeMux, verify, owner func(next http.Handler) http.Handler) {
	protected := func(fn http.HandlerFunc) http.Handler {
		return verify(owner(fn))
	}

	mux.HandleFunc("POST /users", h.create)
	mux.Handle("GET /users/{username}", protected(h.get))
	mux.Handle("PUT /users/{username}", protected(h.update))
	mux.Handle("DELETE /users/{username}", protected(h.delete))
	mux.Handle("POST /users/{username}/movies/{movieID}", protected(h.addFavorite))
	mux.Handle("DELETE /users/{username}/movies/{movieID}", protected(h.removeFavorite))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	birthday, ok := h.parseBirthday(w, req.Birthday)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Birthday: birthday,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, NewUserResponse(user))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.Get(ctx, r.PathValue("username"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	birthday, ok := h.parseBirthday(w, req.Birthday)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.Update(ctx, r.PathValue("username"), service.UpdateInput{
		Password: req.Password,
		Email:    req.Email,
		Birthday: birthday,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.users.Delete(ctx, r.PathValue("username")); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.AddFavorite(ctx, r.PathValue("username"), r.PathValue("movieID"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.RemoveFavorite(ctx, r.PathValue("username"), r.PathValue("movieID"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, NewUserResponse(user))
}

func (h *Handler) parseBirthday(w http.ResponseWriter, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		h.log.Warnf("invalid birthday %q: %v", raw, err)
		commonhttp.WriteError(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
