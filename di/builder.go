package di

import (
	"context"
	"sort"

	apperrors "github.com/kbukum/servicebox/errors"
)

// SetupFunc declares services on a fresh container and returns the container
// to hand back to the caller, usually the same one.
type SetupFunc func(ctx context.Context, c *Container) (*Container, error)

// Builder creates containers for a fixed schema. It holds no state beyond
// its schema and options, so one builder can produce any number of
// independent containers.
type Builder struct {
	schema *Schema
	opts   []Option
}

// NewBuilder creates a builder for schema. A nil schema builds containers
// that accept any name and skip type checks.
func NewBuilder(schema *Schema, opts ...Option) *Builder {
	return &Builder{schema: schema, opts: opts}
}

// Schema returns the builder's schema.
func (b *Builder) Schema() *Schema {
	return b.schema
}

// With returns a copy of the builder carrying additional container options.
func (b *Builder) With(opts ...Option) *Builder {
	merged := make([]Option, 0, len(b.opts)+len(opts))
	merged = append(merged, b.opts...)
	merged = append(merged, opts...)
	return &Builder{schema: b.schema, opts: merged}
}

// BuildProjectionSelector returns selector unchanged once every name in it
// is known to the schema. Names outside the schema fail with UNKNOWN_SERVICE.
func (b *Builder) BuildProjectionSelector(selector Selector) (Selector, error) {
	if b.schema == nil {
		return selector, nil
	}
	for _, name := range sortedNames(selector) {
		if !b.schema.Has(name) {
			return nil, apperrors.UnknownService(name)
		}
	}
	return selector, nil
}

// MustProjectionSelector is like BuildProjectionSelector but panics on error.
// Intended for package-level selector variables.
func (b *Builder) MustProjectionSelector(selector Selector) Selector {
	s, err := b.BuildProjectionSelector(selector)
	if err != nil {
		panic(err)
	}
	return s
}

// BuildContainer creates an empty container, runs setup on it and returns
// the container setup returns. Setup errors are returned unchanged. Every
// name declared during setup must belong to the schema.
func (b *Builder) BuildContainer(ctx context.Context, setup SetupFunc) (*Container, error) {
	opts := make([]Option, 0, len(b.opts)+1)
	opts = append(opts, WithSchema(b.schema))
	opts = append(opts, b.opts...)

	c, err := setup(ctx, NewContainer(opts...))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.InvalidSetup("setup returned no container")
	}

	if c.schema != nil {
		for _, name := range c.declaredNames() {
			if !c.schema.Has(name) {
				return nil, apperrors.UnknownService(name)
			}
		}
	}
	return c, nil
}

func sortedNames(selector Selector) []string {
	names := make([]string, 0, len(selector))
	for name := range selector {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
