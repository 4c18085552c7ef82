package di

import (
	"context"
	"reflect"
)

// ServiceKey identifies a service by name and value type.
type ServiceKey interface {
	Name() string
	Type() reflect.Type
}

// Key is a typed service name. It ties the name used by the container to the
// Go type its factory produces.
type Key[T any] struct {
	name string
}

// NewKey creates a key for a service of type T.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the service name.
func (k Key[T]) Name() string { return k.name }

// Type returns the value type of the service.
func (k Key[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (k Key[T]) String() string { return k.name }

// Declare is the typed form of Container.Set.
func Declare[T any](c *Container, key Key[T], factory func(ctx context.Context, c *Container) (T, error), disposer ...func(ctx context.Context, instance T) error) {
	var dispose Disposer
	if len(disposer) > 0 && disposer[0] != nil {
		typed := disposer[0]
		dispose = func(ctx context.Context, instance any) error {
			v, _ := instance.(T)
			return typed(ctx, v)
		}
	}

	c.Set(key.Name(), func(ctx context.Context, c *Container) (any, error) {
		instance, err := factory(ctx, c)
		if err != nil {
			return nil, err
		}
		return instance, nil
	}, dispose)
}

// Constant returns a factory that always yields v.
func Constant[T any](v T) func(context.Context, *Container) (T, error) {
	return func(context.Context, *Container) (T, error) {
		return v, nil
	}
}
