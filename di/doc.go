// Package di provides a small lazy dependency injection container for
// servicebox applications.
//
// Services are declared by name with a factory and an optional disposer.
// Nothing is built at declaration time: the first resolution of a name runs
// its factory, caches the value, and every later resolution returns the same
// instance. Factories receive the container, so a service resolves its own
// dependencies on demand. Dispose runs the disposer of every cached service
// concurrently and empties the cache.
//
// # Declaration
//
//	var (
//	    Store   = di.NewKey[*Store]("store")
//	    Catalog = di.NewKey[*Catalog]("catalog")
//	)
//
//	builder := di.NewBuilder(di.MustSchema(Store, Catalog))
//	c, err := builder.BuildContainer(ctx, func(ctx context.Context, c *di.Container) (*di.Container, error) {
//	    di.Declare(c, Store, OpenStore, func(ctx context.Context, s *Store) error {
//	        return s.Close()
//	    })
//	    di.Declare(c, Catalog, func(ctx context.Context, c *di.Container) (*Catalog, error) {
//	        store, err := di.Resolve(ctx, c, Store)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return NewCatalog(store), nil
//	    })
//	    return c, nil
//	})
//
// # Resolution
//
//	catalog := di.MustResolve(ctx, c, Catalog)
//
// # Projections
//
//	selector := builder.MustProjectionSelector(di.Select(Catalog))
//	p, err := c.GetProjection(ctx, selector)
//	catalog, _ := di.Lookup(p, Catalog) // Store stays absent and is never built
package di
