package service

import (
	"net/http"

	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
)

var (
	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrUnknownMovie = commonerrors.NewDomainError(
		"UNKNOWN_MOVIE",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"movie not found",
	)
)
