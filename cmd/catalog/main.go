// Command catalog is a small item catalog served over HTTP. Its services
// live in a di.Container and are built on first use.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/servicebox/bootstrap"
	"github.com/kbukum/servicebox/config"
	"github.com/kbukum/servicebox/di"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg CatalogConfig
	if err := config.LoadConfig("catalog", &cfg); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg, builder)
	if err != nil {
		return err
	}

	app.Configure(setupServices(&cfg, app.Logger))
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*CatalogConfig]) error {
		srv, err := di.Resolve(ctx, a.Container, httpKey)
		if err != nil {
			return err
		}
		a.OnStop(srv.Stop)
		return srv.Start(ctx)
	})

	return app.Run(ctx)
}
