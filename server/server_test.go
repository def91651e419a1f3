package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indyteo/WebServerAPI/config"
	"github.com/indyteo/WebServerAPI/observability"
	"github.com/indyteo/WebServerAPI/routing"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	return New(routing.New(), config.ServerConfig{Address: ":0"}, opts...)
}

func TestServeHTTPHandledRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	err := srv.Router().Handle("/items/{id}", http.MethodGet, false, "getItem",
		func(w http.ResponseWriter, r *http.Request) error {
			id, _ := Param(r, "id")
			return NewResponse(w).Text(http.StatusOK, "item "+id)
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "item 42", rec.Body.String())
}

func TestServeHTTPNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTPCustomNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, WithNotFoundHandler(func(w *Response, r *http.Request) {
		_ = w.Text(http.StatusNotFound, "nothing at "+r.URL.Path)
	}))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nothing at /missing", rec.Body.String())
}

func TestServeHTTPUnfinishedHandlerGetsNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	err := srv.Router().Handle("/silent", http.MethodGet, false, "",
		func(w http.ResponseWriter, r *http.Request) error {
			return nil
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/silent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeHTTPStoppedPipeline(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	err := srv.Router().HandleIntermediate("/", "", false, "guard",
		func(w http.ResponseWriter, r *http.Request) (bool, error) {
			http.Error(w, "denied", http.StatusForbidden)
			return false, nil
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServeHTTPHandlerError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	err := srv.Router().Handle("/fail", http.MethodGet, false, "",
		func(w http.ResponseWriter, r *http.Request) error {
			return errors.New("boom")
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeHTTPCustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	srv := newTestServer(t, WithErrorHandler(func(w *Response, r *http.Request, err error) {
		got = err
		_ = w.Text(http.StatusBadGateway, "upstream failed")
	}))
	err := srv.Router().Handle("/fail", http.MethodGet, false, "",
		func(w http.ResponseWriter, r *http.Request) error {
			return errors.New("boom")
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.EqualError(t, got, "boom")
}

func TestServeHTTPRecoversPanic(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	err := srv.Router().Handle("/panic", http.MethodGet, false, "",
		func(w http.ResponseWriter, r *http.Request) error {
			panic("unexpected")
		})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeHTTPMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := observability.NewServerMetrics(reg)

	srv := newTestServer(t, WithMetrics(metrics))
	err := srv.Router().Handle("/items/{id}", http.MethodGet, false, "",
		func(w http.ResponseWriter, r *http.Request) error {
			NewResponse(w).NoContent()
			return nil
		})
	require.NoError(t, err)

	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.RequestsTotal))
}

func TestShutdownWithoutStart(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, srv.Close())
	assert.False(t, srv.IsRunning())
}
