// Package bootstrap runs the lifecycle of a servicebox service.
//
// An App ties a typed config, a di.Builder and a setup function together:
//
//	app, err := bootstrap.NewApp(&cfg, builder)
//	app.Configure(setup)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*CatalogConfig]) error {
//	    router, err := di.Resolve(ctx, a.Container, keys.Router)
//	    ...
//	})
//	app.OnStop(server.Shutdown)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Startup runs the OnStart hooks, builds the container, runs the OnConfigure
// callbacks and the OnReady hooks. Shutdown runs the OnStop hooks and then
// disposes the container, bounded by container.dispose_timeout.
package bootstrap
