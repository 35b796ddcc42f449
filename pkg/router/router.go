// Package router keeps track of which account screen the client is on.
package router

import (
	"path"
	"strings"
	"sync"

	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// Route names.
const (
	RouteAuth     = "Auth"
	RouteDetails  = "Details"
	RouteNotFound = "NotFound"
)

// DefaultBasePath is where the account screens are mounted.
const DefaultBasePath = "/account/"

// Route maps a path to a screen.
type Route struct {
	Name string
	Path string
}

// DefaultRoutes is the account route table. Unmatched paths resolve to
// RouteNotFound.
var DefaultRoutes = []Route{
	{Name: RouteAuth, Path: "/authenticate"},
	{Name: RouteDetails, Path: "/"},
}

// Location is a resolved path.
type Location struct {
	Path string
	Name string
}

// Router records navigation. It implements guard.Navigator.
type Router struct {
	base   string
	routes []Route
	logger logging.Logger

	mu        sync.Mutex
	current   Location
	history   []Location
	listeners []func(from, to Location)
}

// New creates a router. An empty base means DefaultBasePath and nil routes
// mean DefaultRoutes.
func New(base string, routes []Route, logger logging.Logger) *Router {
	if base == "" {
		base = DefaultBasePath
	}
	if routes == nil {
		routes = DefaultRoutes
	}
	return &Router{
		base:   normalizeBase(base),
		routes: routes,
		logger: logger.WithModule("router"),
	}
}

func normalizeBase(base string) string {
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		return base
	}
	return base + "/"
}

// Base returns the normalized base path.
func (r *Router) Base() string {
	return r.base
}

// Resolve maps p to a Location. p may include the base path.
func (r *Router) Resolve(p string) Location {
	p = r.strip(p)
	for _, route := range r.routes {
		if route.Path == p {
			return Location{Path: p, Name: route.Name}
		}
	}
	return Location{Path: p, Name: RouteNotFound}
}

func (r *Router) strip(p string) string {
	if r.base != "/" {
		if p+"/" == r.base {
			return "/"
		}
		if strings.HasPrefix(p, r.base) {
			p = "/" + strings.TrimPrefix(p, r.base)
		}
	}
	cleaned := path.Clean("/" + p)
	return cleaned
}

// URL returns the full path of p under the base path.
func (r *Router) URL(p string) string {
	p = r.strip(p)
	if p == "/" {
		return r.base
	}
	return path.Join(r.base, p)
}

// Navigate moves to p. Navigating to the current location is a no-op.
func (r *Router) Navigate(p string) {
	to := r.Resolve(p)

	r.mu.Lock()
	from := r.current
	if from == to {
		r.mu.Unlock()
		r.logger.Debug("Already at route", "path", to.Path)
		return
	}
	r.current = to
	r.history = append(r.history, to)
	listeners := make([]func(from, to Location), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	r.logger.Info("Navigated", "from", from.Path, "to", to.Path, "route", to.Name)
	for _, fn := range listeners {
		fn(from, to)
	}
}

// OnNavigate registers fn to run after every navigation.
func (r *Router) OnNavigate(fn func(from, to Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Current returns the current location, zero before the first navigation.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns every location navigated to, oldest first.
func (r *Router) History() []Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Location(nil), r.history...)
}
