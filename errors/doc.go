// Package errors provides the structured error type shared by servicebox
// packages. Every error carries a machine-readable code so callers can branch
// on what went wrong (an undeclared service, a schema violation, a timeout)
// without matching on message text.
package errors
