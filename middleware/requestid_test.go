package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indyteo/WebServerAPI/observability"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	handler := RequestID()

	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	w := httptest.NewRecorder()

	cont, err := handler(w, r)
	require.NoError(t, err)
	assert.True(t, cont)

	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, observability.RequestIDFromContext(r.Context()))
}

func TestRequestIDPreservesIncoming(t *testing.T) {
	t.Parallel()

	handler := RequestID()

	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	r.Header.Set(RequestIDHeader, "incoming-id")
	w := httptest.NewRecorder()

	cont, err := handler(w, r)
	require.NoError(t, err)
	assert.True(t, cont)

	assert.Equal(t, "incoming-id", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "incoming-id", observability.RequestIDFromContext(r.Context()))
}

func TestRequestIDWithGenerator(t *testing.T) {
	t.Parallel()

	handler := RequestIDWithGenerator(func() string { return "fixed-id" })

	r := httptest.NewRequest(http.MethodGet, "/items", nil)
	w := httptest.NewRecorder()

	cont, err := handler(w, r)
	require.NoError(t, err)
	assert.True(t, cont)

	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}
