package http

import (
	"net/http"

	"github.com/moviebase/moviebase/internal/common/constants"
	"github.com/moviebase/moviebase/internal/common/httpmetrics"
	"github.com/moviebase/moviebase/internal/common/logger"
)

// BuildBaseHandler wraps the application mux in the ambient middleware chain:
// security headers, panic recovery, trace IDs, request-size cap, metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
