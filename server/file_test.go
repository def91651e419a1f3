package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResponseFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "page.html", "<h1>hello</h1>")

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).File(path))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>hello</h1>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestResponseFileMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).File(filepath.Join(dir, "missing.html")))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A directory is not a servable file either.
	rec = httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).File(dir))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseFileUnknownExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "data.qqq", "raw")

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).File(path))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unsafe serving falls back to binary data.
	rec = httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).FileWithOptions(path, FileOptions{Unsafe: true}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, binaryContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "raw", rec.Body.String())
}

func TestResponseFileWithoutExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "LICENSE", "terms")

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).File(path))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, binaryContentType, rec.Header().Get("Content-Type"))
}

func TestResponseFileDownload(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "report.json", `{"a":1}`)

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).FileWithOptions(path, FileOptions{Download: true}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="report.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestResponseFileForcedContentType(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "data.qqq", "text")

	rec := httptest.NewRecorder()
	require.NoError(t, NewResponse(rec).FileWithOptions(path, FileOptions{
		ContentType: "text/plain",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
