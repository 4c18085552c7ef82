package di

// Option configures a Container.
type Option func(*options)

type options struct {
	schema    *Schema
	observers Observers
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSchema binds the container to a schema. Resolved values are checked
// against the schema types and projections span the full schema.
func WithSchema(schema *Schema) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithObserver adds an observer notified around factory and disposer runs.
// It may be given more than once.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}
