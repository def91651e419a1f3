package server

import (
	"encoding/json"
	"net/http"
)

// Response wraps an http.ResponseWriter and records what was written to
// it. A response is finished once its header has been sent, which is the
// signal the dispatch pipeline uses to stop running further handlers.
type Response struct {
	http.ResponseWriter

	status      int
	size        int64
	wroteHeader bool
}

// NewResponse wraps w. An already wrapped writer is returned as is, so
// handlers may call it on the writer they receive.
func NewResponse(w http.ResponseWriter) *Response {
	if resp, ok := w.(*Response); ok {
		return resp
	}
	return &Response{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code and sends the header.
func (r *Response) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

// Write sends body bytes, implicitly finishing the response with 200
// when no header was sent yet.
func (r *Response) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += int64(n)
	return n, err
}

// Finished reports whether the response header has been sent.
func (r *Response) Finished() bool {
	return r.wroteHeader
}

// Status returns the status code sent to the client, or 200 when the
// response is not finished yet.
func (r *Response) Status() int {
	return r.status
}

// Size returns the number of body bytes written so far.
func (r *Response) Size() int64 {
	return r.size
}

// Text sends a plain-text response with the given status.
func (r *Response) Text(status int, body string) error {
	r.Header().Set("Content-Type", "text/plain; charset=utf-8")
	r.WriteHeader(status)
	_, err := r.Write([]byte(body))
	return err
}

// JSON sends v encoded as JSON with the given status.
func (r *Response) JSON(status int, v any) error {
	r.Header().Set("Content-Type", "application/json")
	r.WriteHeader(status)
	return json.NewEncoder(r).Encode(v)
}

// NoContent finishes the response with 204 and no body.
func (r *Response) NoContent() {
	r.WriteHeader(http.StatusNoContent)
}

// Redirect finishes the response with a Location header and the given
// redirect status.
func (r *Response) Redirect(status int, url string) {
	r.Header().Set("Location", url)
	r.WriteHeader(status)
}

// SetCookie adds a Set-Cookie header to the response.
func (r *Response) SetCookie(cookie *http.Cookie) {
	http.SetCookie(r, cookie)
}

// DeleteCookie instructs the client to discard the named cookie.
func (r *Response) DeleteCookie(name string) {
	http.SetCookie(r, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
