package routing

import (
	"net/http"
)

// Handler is the terminal handler producing the response for a matched
// route. A returned error is propagated unchanged to the caller of
// Dispatch.
type Handler func(w http.ResponseWriter, r *http.Request) error

// IntermediateHandler runs before the terminal handler. It returns true
// to continue dispatch to the next stage and false to stop the pipeline.
// A handler that finalizes the response is treated as a stop regardless
// of the returned value.
type IntermediateHandler func(w http.ResponseWriter, r *http.Request) (bool, error)

// Route binds a compiled template to a terminal handler.
type Route struct {
	Template
	handler Handler
}

// Handler returns the terminal handler of the route.
func (r *Route) Handler() Handler {
	return r.handler
}

// routeKey identifies a route in the registry. Routes sharing a method
// and stripped form are the same entry regardless of placeholder names,
// so re-registering one replaces the other.
type routeKey struct {
	method   string
	stripped string
}

func (r *Route) key() routeKey {
	return routeKey{method: r.method, stripped: r.stripped}
}

// IntermediateRoute binds a compiled template to an intermediate
// handler.
type IntermediateRoute struct {
	Template
	handler IntermediateHandler
}

// Handler returns the intermediate handler of the route.
func (r *IntermediateRoute) Handler() IntermediateHandler {
	return r.handler
}

// before reports whether r runs ahead of o during dispatch: less
// specific routes first, registration order on equal specificity.
func (r *IntermediateRoute) before(o *IntermediateRoute) bool {
	if r.Len() != o.Len() {
		return r.Len() < o.Len()
	}
	return r.id < o.id
}

// String returns a loggable description of the intermediate route.
func (r *IntermediateRoute) String() string {
	return r.Template.String() + " [+]"
}
