package service

import (
	"net/http"

	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
)

// ErrUnknownUsername and ErrWrongPassword are distinguishable internally (by
// code, for logs and tests) but deliberately share one boundary message so a
// caller cannot enumerate usernames.
var (
	ErrUnknownUsername = commonerrors.NewDomainError(
		"UNKNOWN_USERNAME",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrWrongPassword = commonerrors.NewDomainError(
		"WRONG_PASSWORD",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrMalformedCredential = commonerrors.NewDomainError(
		"MALFORMED_CREDENTIAL",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username and password are required",
	)
)
