package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/indyteo/WebServerAPI/observability"
	"github.com/indyteo/WebServerAPI/routing"
)

// RequestIDHeader is the header name for the request id.
const RequestIDHeader = "X-Request-ID"

// RequestID returns an intermediate handler that tags each request with
// a unique id, reusing the one supplied by the client when present. The
// id is attached to the request context and echoed on the response.
func RequestID() routing.IntermediateHandler {
	return RequestIDWithGenerator(uuid.NewString)
}

// RequestIDWithGenerator returns a RequestID handler using a custom id
// generator.
func RequestIDWithGenerator(generator func() string) routing.IntermediateHandler {
	return func(w http.ResponseWriter, r *http.Request) (bool, error) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = generator()
		}

		*r = *r.WithContext(observability.ContextWithRequestID(r.Context(), requestID))
		w.Header().Set(RequestIDHeader, requestID)

		return true, nil
	}
}
