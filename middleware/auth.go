package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/indyteo/WebServerAPI/routing"
)

type authContextKey int

const tokenContextKey authContextKey = iota

// JWTConfig contains JWT authentication configuration.
type JWTConfig struct {
	// Secret is the shared HMAC key used to verify token signatures.
	Secret []byte

	// Algorithm is the expected signature algorithm. Defaults to HS256.
	Algorithm jwa.SignatureAlgorithm

	// Issuer, when set, must match the token's "iss" claim.
	Issuer string

	// Audience, when set, must be present in the token's "aud" claim.
	Audience string
}

// JWTAuth returns an intermediate handler that verifies the Bearer token
// on every guarded request. Requests with a missing or invalid token are
// answered with 401 and stop the pipeline. On success the parsed token is
// bound to the request context and can be retrieved with TokenFromContext.
func JWTAuth(cfg JWTConfig) routing.IntermediateHandler {
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwa.HS256
	}

	opts := []jwt.ParseOption{
		jwt.WithKey(alg, cfg.Secret),
		jwt.WithValidate(true),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return func(w http.ResponseWriter, r *http.Request) (bool, error) {
		raw, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return false, nil
		}

		token, err := jwt.Parse([]byte(raw), opts...)
		if err != nil {
			unauthorized(w)
			return false, nil
		}

		*r = *r.WithContext(context.WithValue(r.Context(), tokenContextKey, token))
		return true, nil
	}
}

// TokenFromContext returns the verified JWT token bound to the context by
// JWTAuth, or nil when the request was not authenticated.
func TokenFromContext(ctx context.Context) jwt.Token {
	token, _ := ctx.Value(tokenContextKey).(jwt.Token)
	return token
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="restricted"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
