// Package guard redirects between the sign-in route and the signed-in
// landing route as the session changes.
package guard

import (
	"context"

	"github.com/ideamans/accountclient/pkg/session"
	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// Navigator moves the application to a route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// Source is the observable session a Guard follows. *session.Store
// implements it.
type Source interface {
	State() session.State
	Subscribe(fn session.Listener) func()
}

// Options are the redirect targets. An empty route disables that rule.
type Options struct {
	OnAuthRoute      string
	RequireAuthRoute string
}

// Guard applies the redirect rules.
type Guard struct {
	opts   Options
	nav    Navigator
	logger logging.Logger
}

// New creates a guard.
func New(opts Options, nav Navigator, logger logging.Logger) *Guard {
	return &Guard{
		opts:   opts,
		nav:    nav,
		logger: logger.WithModule("guard"),
	}
}

// Attach evaluates the rules against the current state once, then again on
// every change that assigns the current user. The returned function detaches.
func (g *Guard) Attach(src Source) (detach func()) {
	detach = src.Subscribe(func(c session.Change) {
		if c.Has(session.FieldCurrentUser) {
			g.Evaluate(c.State)
		}
	})
	g.Evaluate(src.State())
	return detach
}

// Evaluate navigates according to st. It performs at most one navigation.
func (g *Guard) Evaluate(st session.State) {
	switch {
	case st.Authenticated() && g.opts.OnAuthRoute != "":
		g.logger.Debug("Signed in, redirecting", "route", g.opts.OnAuthRoute)
		g.nav.Navigate(g.opts.OnAuthRoute)
	case !st.Authenticated() && g.opts.RequireAuthRoute != "":
		g.logger.Debug("Not signed in, redirecting", "route", g.opts.RequireAuthRoute)
		g.nav.Navigate(g.opts.RequireAuthRoute)
	}
}

// UseAuth attaches a guard configured from the routes of the store installed
// in ctx and returns that store with the detach function. Like
// session.FromContext it panics when no store is installed.
func UseAuth(ctx context.Context, nav Navigator, logger logging.Logger) (*session.Store, func()) {
	store := session.FromContext(ctx)
	routes := store.Routes()
	g := New(Options{
		OnAuthRoute:      routes.OnAuthRoute,
		RequireAuthRoute: routes.RequireAuthRoute,
	}, nav, logger)
	return store, g.Attach(store)
}
