// Package server provides the HTTP server used by servicebox applications,
// a Gin engine with a standard middleware stack and JSON response helpers
// that render errors.AppError values.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation into the log context
//   - RequestLogger: request logging with duration tracking
//   - TokenAuth: shared-secret header check for private routes
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: liveness report
package server
