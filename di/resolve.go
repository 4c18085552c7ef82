package di

import (
	"context"
	"fmt"
	"reflect"

	apperrors "github.com/kbukum/servicebox/errors"
)

// Resolve resolves a service with type safety, returns error on failure.
// Errors from the container and from factories are returned unchanged.
//
// Example:
//
//	store, err := di.Resolve(ctx, c, keys.Store)
//	if err != nil {
//	    return nil, err
//	}
func Resolve[T any](ctx context.Context, c *Container, key Key[T]) (T, error) {
	var zero T
	instance, err := c.Get(ctx, key.Name())
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	result, ok := instance.(T)
	if !ok {
		return zero, apperrors.TypeMismatch(key.Name(), key.Type(), reflect.TypeOf(instance))
	}
	return result, nil
}

// MustResolve resolves a service with type safety, panics on error.
// Use this in wiring code where a missing dependency is a programming error.
func MustResolve[T any](ctx context.Context, c *Container, key Key[T]) T {
	result, err := Resolve(ctx, c, key)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", key.Name(), err))
	}
	return result
}

// TryResolve resolves a service, returns zero value and false on any failure.
// Use this when a dependency is optional.
//
// Example:
//
//	if auditor, ok := di.TryResolve(ctx, c, keys.Auditor); ok {
//	    auditor.Record(item)
//	}
func TryResolve[T any](ctx context.Context, c *Container, key Key[T]) (T, bool) {
	result, err := Resolve(ctx, c, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
