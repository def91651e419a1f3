// Package observability provides structured logging and server metrics
// for the web server library.
package observability
