// Package httputil provides HTTP plumbing shared by glyphbrot's server.
//
// # Overview
//
// This package provides the pieces every handler needs:
//
//   - [WriteJSON] and [WriteError]: JSON responses and coded error bodies
//   - [StatusFor]: maps error codes from pkg/errors onto HTTP status codes
//   - [RequestID]: assigns each request a UUID, echoed in X-Request-ID
//   - [AccessLog]: one structured log line per request plus HTTP hooks
//
// # Errors
//
// Handlers return errors built with pkg/errors. [WriteError] turns them
// into a JSON body of the form
//
//	{"code": "INVALID_VIEWPORT", "message": "xmin (2) must be below xmax (1)"}
//
// with the status chosen by [StatusFor]:
//
//   - INVALID_* codes: 400 Bad Request
//   - LIMIT_EXCEEDED: 422 Unprocessable Entity
//   - NOT_FOUND: 404 Not Found
//   - anything else: 500 Internal Server Error
//
// Internal errors never leak their message to the client.
//
// # Middleware
//
// Both middlewares have the standard func(http.Handler) http.Handler shape
// and plug straight into a chi router:
//
//	r := chi.NewRouter()
//	r.Use(httputil.RequestID)
//	r.Use(httputil.AccessLog(logger))
package httputil
