package http

import (
	"context"
	"net/http"
	"time"

	"github.com/moviebase/moviebase/internal/auth/service"
	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/logger"
	userapi "github.com/moviebase/moviebase/internal/user/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is only written on success. Failures carry a bare error
// message and no user field.
type loginResponse struct {
	User  userapi.UserResponse `json:"user"`
	Token string               `json:"token"`
}

type Handler struct {
	auth    *service.AuthService
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{auth: auth, log: log, timeout: timeout}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /login", h.login)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json from %s: %v", commonhttp.GetClientIP(r), err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		User:  userapi.NewUserResponse(result.User),
		Token: result.Token,
	})
}
