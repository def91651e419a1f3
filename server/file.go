package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// binaryContentType is served for files without an extension and, when
// explicitly allowed, for files with an unknown one.
const binaryContentType = "application/octet-stream"

// FileOptions controls how a file is sent to the client.
type FileOptions struct {
	// Download asks the client to save the file instead of
	// displaying it.
	Download bool

	// Unsafe allows serving files whose extension has no known MIME
	// type. Such files are refused with 403 otherwise.
	Unsafe bool

	// ContentType forces the Content-Type header, bypassing the
	// extension lookup.
	ContentType string
}

// File sends the file at path with a Content-Type derived from its
// extension.
func (r *Response) File(path string) error {
	return r.FileWithOptions(path, FileOptions{})
}

// FileWithOptions sends the file at path. A missing file finishes the
// response with 404 and a file with an unknown extension with 403,
// unless the options allow it.
func (r *Response) FileWithOptions(path string, opts FileOptions) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		r.WriteHeader(http.StatusNotFound)
		return nil
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = contentTypeByExtension(path, opts.Unsafe)
		if contentType == "" {
			r.WriteHeader(http.StatusForbidden)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		r.WriteHeader(http.StatusNotFound)
		return nil
	}
	defer func() { _ = f.Close() }()

	r.Header().Set("Content-Type", contentType)
	if opts.Download {
		r.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	}
	r.WriteHeader(http.StatusOK)

	_, err = io.Copy(r, f)
	return err
}

// contentTypeByExtension resolves the Content-Type for a file path. A
// file without an extension is plain binary data; an unknown extension
// resolves to the empty string unless unsafe serving is allowed.
func contentTypeByExtension(path string, unsafe bool) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return binaryContentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	if unsafe {
		return binaryContentType
	}
	return ""
}
