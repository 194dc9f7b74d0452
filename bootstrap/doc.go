// Package bootstrap runs a service's lifecycle: it starts registered
// components in order, runs configure callbacks that wire the business
// layer onto started infrastructure, starts components registered during
// configuration, and on shutdown stops everything in reverse.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(dbComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    // mount routes, then register the HTTP server component
//	    return a.RegisterComponent(serverComponent)
//	})
//	err = app.Run(ctx)
package bootstrap
