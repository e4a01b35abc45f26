package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/moviebase/moviebase/internal/auth/http"
	authservice "github.com/moviebase/moviebase/internal/auth/service"
	"github.com/moviebase/moviebase/internal/authz"
	"github.com/moviebase/moviebase/internal/common/clock"
	"github.com/moviebase/moviebase/internal/common/config"
	"github.com/moviebase/moviebase/internal/common/constants"
	commoncrypto "github.com/moviebase/moviebase/internal/common/crypto"
	"github.com/moviebase/moviebase/internal/common/db"
	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/jwtverify"
	"github.com/moviebase/moviebase/internal/common/logger"
	srv "github.com/moviebase/moviebase/internal/common/server"
	moviehttp "github.com/moviebase/moviebase/internal/movie/http"
	movierepo "github.com/moviebase/moviebase/internal/movie/repository"
	userhttp "github.com/moviebase/moviebase/internal/user/http"
	userrepo "github.com/moviebase/moviebase/internal/user/repository"
	userservice "github.com/moviebase/moviebase/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	realClock := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()

	users := userrepo.NewPgRepository(pool)
	movies := movierepo.NewPgRepository(pool)

	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, constants.TokenTTL, realClock)
	authService := authservice.NewAuthService(users, hasher, issuer, log)
	userService := userservice.NewService(users, hasher, idGenerator, realClock, log)

	verifier := jwtverify.NewVerifier(cfg.JWTSecret, users, realClock, log)
	verify := verifier.Middleware()
	owner := authz.RequireOwner("username", log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", commonhttp.HealthHandler())
	mux.Handle("GET /metrics", promhttp.Handler())

	authhttp.NewHandler(authService, log, cfg.RequestTimeout).Register(mux)
	userhttp.NewHandler(userService, log, cfg.RequestTimeout).Register(mux, verify, owner)
	moviehttp.NewHandler(movies, log, cfg.RequestTimeout).Register(mux, verify)

	handler := commonhttp.BuildBaseHandler(log, mux)
	server := srv.New(cfg.HTTPPort, handler)

	srv.StartWithGracefulShutdown(server, log, "api")
}
