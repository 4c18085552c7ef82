// Package middleware holds the Gin middleware installed by server.New and
// the token check used on private route groups.
package middleware
