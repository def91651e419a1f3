package middleware

import (
	"net/http"

	"github.com/indyteo/WebServerAPI/observability"
	"github.com/indyteo/WebServerAPI/routing"
)

// Logging returns an intermediate handler that logs every request it
// guards and continues the pipeline. The terminal route is not known at
// this point of the pipeline; completion logging (matched route, status,
// duration) belongs to the server around dispatch.
func Logging(logger observability.Logger) routing.IntermediateHandler {
	return func(_ http.ResponseWriter, r *http.Request) (bool, error) {
		logger.WithContext(r.Context()).Info("request received",
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
			observability.String("remote_addr", r.RemoteAddr),
		)
		return true, nil
	}
}
