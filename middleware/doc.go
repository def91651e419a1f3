// Package middleware provides ready-made intermediate handlers for the
// routing pipeline: request logging, request ids, CORS, rate limiting
// and JWT authentication.
//
// Each constructor returns a routing.IntermediateHandler meant to be
// registered on a router, typically on a non-strict route guarding the
// subtree it applies to.
package middleware
