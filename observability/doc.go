// Package observability provides OpenTelemetry tracing and metrics for
// servicebox applications.
//
// Setup:
//
//	providers, err := observability.Setup(ctx, info, cfg.Observability)
//	defer providers.Shutdown(ctx)
//
// Container instrumentation:
//
//	obs, err := observability.NewGlobalContainerObserver()
//	builder := di.NewBuilder(schema, di.WithObserver(obs))
//
// Every factory run produces a "di.resolve <name>" span and every disposer
// run a "di.dispose <name>" span, along with the di.resolve.* and
// di.dispose.* metrics.
package observability
