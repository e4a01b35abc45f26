// Package authz enforces resource ownership: a principal may act only on its
// own records. There is no role hierarchy, no admin override, no sharing.
package authz

import (
	"net/http"

	commonerrors "github.com/moviebase/moviebase/internal/common/errors"
	commonhttp "github.com/moviebase/moviebase/internal/common/http"
	"github.com/moviebase/moviebase/internal/common/jwtverify"
	"github.com/moviebase/moviebase/internal/common/logger"
	"github.com/moviebase/moviebase/internal/observability/metrics"
	userdomain "github.com/moviebase/moviebase/internal/user/domain"
)

// ErrPermissionDenied is distinct from authentication failure: the caller is
// known, just not the owner. One message for every denial shape.
var ErrPermissionDenied = commonerrors.NewDomainError(
	"PERMISSION_DENIED",
	commonerrors.CategoryForbidden,
	http.StatusForbidden,
	"permission denied",
)

// Authorize requires exact, case-sensitive equality between the principal's
// username and the owner implied by the request path.
func Authorize(principal userdomain.User, requestedUsername string) bool {
	return principal.Username == requestedUsername
}

// RequireOwner gates a route whose path carries the owner's username under
// pathParam. It assumes the token verifier already ran.
func RequireOwner(pathParam string, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := jwtverify.FromContext(r.Context())
			if !ok {
				commonhttp.HandleError(w, r, jwtverify.ErrMissingCredentials, log)
				return
			}

			requested := r.PathValue(pathParam)
			if !Authorize(principal, requested) {
				metrics.AuthorizationDenialsTotal.Inc()
				log.WithFields(r.Context(), logger.Fields{
					"principal": principal.Username,
					"requested": requested,
					"action":    "ownership_denied",
				}).Warn("ownership check failed")
				commonhttp.HandleError(w, r, ErrPermissionDenied, log)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
