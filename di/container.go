package di

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/kbukum/servicebox/errors"
)

// Factory produces the value of a service. It receives the container so it
// can resolve the services it depends on.
type Factory func(ctx context.Context, c *Container) (any, error)

// Disposer releases whatever a resolved service holds.
type Disposer func(ctx context.Context, instance any) error

func noopDisposer(context.Context, any) error { return nil }

// RegistrationInfo describes a service known to the container.
type RegistrationInfo struct {
	Name     string
	Type     reflect.Type // nil when the container has no schema entry for Name
	Declared bool
	Cached   bool
}

// Container holds service declarations and the instances built from them.
//
// Every name is built at most once per container lifetime: the first Get runs
// the factory and caches the value. Concurrent first resolutions of the same
// name share a single factory run. Dispose empties the cache, after which the
// next Get builds the service again.
type Container struct {
	schema   *Schema
	observer Observer

	mu        sync.RWMutex
	factories map[string]Factory
	disposers map[string]Disposer
	instances map[string]any

	flights singleflight.Group
}

// NewContainer creates an empty container.
func NewContainer(opts ...Option) *Container {
	o := resolveOptions(opts)
	return &Container{
		schema:    o.schema,
		observer:  o.observers,
		factories: make(map[string]Factory),
		disposers: make(map[string]Disposer),
		instances: make(map[string]any),
	}
}

// Schema returns the schema the container was created with, or nil.
func (c *Container) Schema() *Schema {
	return c.schema
}

// Set declares name with a factory and an optional disposer, replacing any
// earlier declaration. An instance already cached under name is kept and
// keeps being returned until the next Dispose.
func (c *Container) Set(name string, factory Factory, disposer ...Disposer) {
	dispose := Disposer(noopDisposer)
	if len(disposer) > 0 && disposer[0] != nil {
		dispose = disposer[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.factories[name] = factory
	c.disposers[name] = dispose
}

// Get returns the instance for name, building it on first use.
// It fails with a SERVICE_NOT_DECLARED error when name has no factory.
// Factory errors are returned unchanged and leave nothing cached.
func (c *Container) Get(ctx context.Context, name string) (any, error) {
	if instance, ok := c.cached(name); ok {
		return instance, nil
	}

	instance, err, _ := c.flights.Do(name, func() (any, error) {
		// Double-check: a flight that finished after our first lookup may
		// already have cached the value.
		if instance, ok := c.cached(name); ok {
			return instance, nil
		}
		return c.build(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func (c *Container) cached(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	instance, ok := c.instances[name]
	return instance, ok
}

func (c *Container) build(ctx context.Context, name string) (any, error) {
	c.mu.RLock()
	factory := c.factories[name]
	c.mu.RUnlock()

	if factory == nil {
		return nil, apperrors.NotDeclared(name)
	}

	start := time.Now()
	ctx = c.observer.ResolveStarted(ctx, name)

	instance, err := factory(ctx, c)
	if err == nil {
		err = c.checkType(name, instance)
	}

	c.observer.ResolveFinished(ctx, name, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.instances[name] = instance
	c.mu.Unlock()

	return instance, nil
}

func (c *Container) checkType(name string, instance any) error {
	if instance == nil {
		return nil
	}
	want, ok := c.schema.TypeOf(name)
	if !ok {
		return nil
	}
	if got := reflect.TypeOf(instance); !got.AssignableTo(want) {
		return apperrors.TypeMismatch(name, want, got)
	}
	return nil
}

// GetProjection resolves the names enabled in selector one after another
// and returns a projection spanning the container's full key set. Names not
// selected hold the Absent marker and their factories are never run.
//
// With a schema the key set is exactly the schema, resolved in schema order;
// selecting a name outside it fails with UNKNOWN_SERVICE. Without one the key
// set is every declared or selected name, in lexicographic order. The first
// error aborts the projection.
func (c *Container) GetProjection(ctx context.Context, selector Selector) (*Projection, error) {
	names, err := c.projectionNames(selector)
	if err != nil {
		return nil, err
	}
	p := newProjection(names)
	for _, name := range p.names {
		if !selector[name] {
			continue
		}
		instance, err := c.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		p.values[name] = instance
	}
	return p, nil
}

func (c *Container) projectionNames(selector Selector) ([]string, error) {
	if c.schema != nil {
		for _, name := range selector.Selected() {
			if !c.schema.Has(name) {
				return nil, apperrors.UnknownService(name)
			}
		}
		return c.schema.Names(), nil
	}

	seen := make(map[string]struct{}, len(selector))
	var names []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for name := range selector {
		add(name)
	}
	c.mu.RLock()
	for name := range c.factories {
		add(name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

type cachedService struct {
	name     string
	instance any
	dispose  Disposer
}

// Dispose runs the disposer of every cached service concurrently, waits for
// all of them to return, then empties the cache. Declarations are kept.
//
// The first disposer error is returned unchanged; the remaining disposers
// still run to completion and the cache is cleared regardless.
func (c *Container) Dispose(ctx context.Context) error {
	c.mu.RLock()
	services := make([]cachedService, 0, len(c.instances))
	for name, instance := range c.instances {
		dispose := c.disposers[name]
		if dispose == nil {
			dispose = noopDisposer
		}
		services = append(services, cachedService{name: name, instance: instance, dispose: dispose})
	}
	c.mu.RUnlock()

	var g errgroup.Group
	for _, svc := range services {
		g.Go(func() error {
			start := time.Now()
			err := svc.dispose(ctx, svc.instance)
			c.observer.DisposeFinished(ctx, svc.name, time.Since(start), err)
			return err
		})
	}
	err := g.Wait()

	c.mu.Lock()
	clear(c.instances)
	c.mu.Unlock()

	return err
}

// Registrations returns every declared service, sorted by name.
func (c *Container) Registrations() []RegistrationInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.factories))
	for name, factory := range c.factories {
		_, cached := c.instances[name]
		info := RegistrationInfo{Name: name, Declared: factory != nil, Cached: cached}
		info.Type, _ = c.schema.TypeOf(name)
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (c *Container) declaredNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
