// Package server binds the routing engine to net/http. It owns the
// listener lifecycle and the default policies around dispatch: panic
// recovery, error rendering and the not-found response.
package server
