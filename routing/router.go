package routing

import (
	"net/http"
	"sort"
	"sync"

	"github.com/indyteo/WebServerAPI/observability"
)

// ResponseState is implemented by response writers that know whether a
// response has been finalized. Dispatch treats a finished response as a
// stop signal even when the intermediate handler returned true, so a
// handler that ends the response but forgets to return false cannot
// cause a double write.
type ResponseState interface {
	Finished() bool
}

// Outcome reports how a dispatch run ended.
type Outcome int

const (
	// OutcomeNoRoute means no terminal route matched; the caller
	// decides the not-found policy.
	OutcomeNoRoute Outcome = iota

	// OutcomeStopped means an intermediate route ended the pipeline
	// before the terminal stage.
	OutcomeStopped

	// OutcomeHandled means the best-match terminal handler was
	// invoked.
	OutcomeHandled
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoRoute:
		return "no-route"
	case OutcomeStopped:
		return "stopped"
	case OutcomeHandled:
		return "handled"
	default:
		return "unknown"
	}
}

// Router owns the registered terminal and intermediate routes and runs
// the per-request dispatch pipeline. Registration is expected to finish
// before serving starts; during serving all operations are read-only
// and safe for concurrent use.
type Router struct {
	mu            sync.RWMutex
	routes        map[routeKey]*Route
	intermediates []*IntermediateRoute
	logger        observability.Logger
}

// Option is a functional option for configuring the router.
type Option func(*Router)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger observability.Logger) Option {
	return func(rt *Router) {
		rt.logger = logger
	}
}

// New creates an empty router.
func New(opts ...Option) *Router {
	rt := &Router{
		routes: make(map[routeKey]*Route),
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// Register adds a terminal route. A route with the same method and
// stripped form as an existing one replaces it; the override is
// reported as a warning, never rejected.
func (rt *Router) Register(route *Route) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	key := route.key()
	if previous, ok := rt.routes[key]; ok {
		rt.logger.Warn("overriding previously registered route",
			observability.String("route", route.String()),
			observability.String("previous", previous.String()))
	}
	rt.routes[key] = route
}

// RegisterIntermediate adds an intermediate route, keeping the
// collection in execution order. Intermediate routes are never
// de-duplicated: two structurally identical entries both run.
func (rt *Router) RegisterIntermediate(route *IntermediateRoute) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	i := sort.Search(len(rt.intermediates), func(i int) bool {
		return route.before(rt.intermediates[i])
	})
	rt.intermediates = append(rt.intermediates, nil)
	copy(rt.intermediates[i+1:], rt.intermediates[i:])
	rt.intermediates[i] = route
}

// Handle builds and registers a terminal route from raw inputs. An
// empty method matches any method.
func (rt *Router) Handle(route, method string, strict bool, name string, handler Handler) error {
	built, err := NewRouteBuilder().
		Route(route).
		Method(method).
		Strict(strict).
		Name(name).
		Handler(handler).
		Build()
	if err != nil {
		return err
	}
	rt.Register(built)
	return nil
}

// HandleIntermediate builds and registers an intermediate route from
// raw inputs.
func (rt *Router) HandleIntermediate(route, method string, strict bool, name string, handler IntermediateHandler) error {
	built, err := NewRouteBuilder().
		Route(route).
		Method(method).
		Strict(strict).
		Name(name).
		Intermediate(handler).
		BuildIntermediate()
	if err != nil {
		return err
	}
	rt.RegisterIntermediate(built)
	return nil
}

// Route returns the most specific terminal route matching the given
// path and method, or nil when none matches. Specificity is the length
// of the stripped form; equal lengths are broken deterministically in
// favor of the earliest registered template.
func (rt *Router) Route(path, method string) *Route {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	var best *Route
	for _, route := range rt.routes {
		if !route.Match(path, method) {
			continue
		}
		if best == nil || route.Len() > best.Len() ||
			(route.Len() == best.Len() && route.ID() < best.ID()) {
			best = route
		}
	}
	return best
}

// Routes returns all registered terminal routes.
func (rt *Router) Routes() []*Route {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	routes := make([]*Route, 0, len(rt.routes))
	for _, route := range rt.routes {
		routes = append(routes, route)
	}
	return routes
}

// Intermediates returns all intermediate routes in execution order.
func (rt *Router) Intermediates() []*IntermediateRoute {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	intermediates := make([]*IntermediateRoute, len(rt.intermediates))
	copy(intermediates, rt.intermediates)
	return intermediates
}

// Dispatch runs the two-phase pipeline for the request: every matching
// intermediate route in order, then the best-match terminal route.
//
// The pipeline stops as soon as an intermediate handler returns false,
// finalizes the response, or fails. Handler errors are returned
// unchanged; the router never writes a not-found response itself.
//
// Dispatch rebinds the matched template and its parameters on the
// request at every stage. The request object is updated in place;
// callers that must not expose these modifications should pass a
// shallow copy.
func (rt *Router) Dispatch(w http.ResponseWriter, r *http.Request) (Outcome, error) {
	path := r.URL.Path
	method := r.Method

	for _, route := range rt.Intermediates() {
		if !route.Match(path, method) {
			continue
		}
		bindTemplate(r, &route.Template)
		cont, err := route.handler(w, r)
		if err != nil {
			return OutcomeStopped, err
		}
		if !cont || responseFinished(w) {
			return OutcomeStopped, nil
		}
	}

	route := rt.Route(path, method)
	if route == nil {
		return OutcomeNoRoute, nil
	}

	bindTemplate(r, &route.Template)
	if err := route.handler(w, r); err != nil {
		return OutcomeHandled, err
	}
	return OutcomeHandled, nil
}

// responseFinished reports whether the writer knows its response has
// been finalized.
func responseFinished(w http.ResponseWriter) bool {
	state, ok := w.(ResponseState)
	return ok && state.Finished()
}
