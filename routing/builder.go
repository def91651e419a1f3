package routing

import (
	"reflect"
	"runtime"
	"strings"
)

// RouteBuilder assembles Route and IntermediateRoute values from raw
// inputs. Every Build call snapshots the current state, so one builder
// can stamp out several records sharing a handler but differing in
// method or route.
type RouteBuilder struct {
	route        string
	method       string
	strict       bool
	name         string
	handler      Handler
	intermediate IntermediateHandler
}

// NewRouteBuilder creates a builder for the root route with no method
// restriction and non-strict matching.
func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{route: "/"}
}

// Route sets the route template string.
func (b *RouteBuilder) Route(route string) *RouteBuilder {
	b.route = route
	return b
}

// Method restricts the route to one HTTP method. An empty method
// matches any method.
func (b *RouteBuilder) Method(method string) *RouteBuilder {
	b.method = strings.ToUpper(method)
	return b
}

// Strict requires the full request path to match the template instead
// of treating it as a subtree prefix.
func (b *RouteBuilder) Strict(strict bool) *RouteBuilder {
	b.strict = strict
	return b
}

// Name sets the display name of the route. When omitted, the name
// defaults to the identifying name of the handler function.
func (b *RouteBuilder) Name(name string) *RouteBuilder {
	b.name = name
	return b
}

// Handler sets the terminal handler.
func (b *RouteBuilder) Handler(handler Handler) *RouteBuilder {
	b.handler = handler
	return b
}

// Intermediate sets the intermediate handler.
func (b *RouteBuilder) Intermediate(handler IntermediateHandler) *RouteBuilder {
	b.intermediate = handler
	return b
}

// Build compiles the current state into an immutable terminal route.
func (b *RouteBuilder) Build() (*Route, error) {
	if b.handler == nil {
		return nil, &TemplateError{Route: b.route, Message: "missing terminal handler", Cause: ErrNilHandler}
	}
	template, err := compileTemplate(b.route, b.method, b.strict, b.displayName(b.handler))
	if err != nil {
		return nil, err
	}
	return &Route{Template: *template, handler: b.handler}, nil
}

// BuildIntermediate compiles the current state into an immutable
// intermediate route.
func (b *RouteBuilder) BuildIntermediate() (*IntermediateRoute, error) {
	if b.intermediate == nil {
		return nil, &TemplateError{Route: b.route, Message: "missing intermediate handler", Cause: ErrNilHandler}
	}
	template, err := compileTemplate(b.route, b.method, b.strict, b.displayName(b.intermediate))
	if err != nil {
		return nil, err
	}
	return &IntermediateRoute{Template: *template, handler: b.intermediate}, nil
}

// displayName resolves the route name, falling back to the handler's
// function name when none was set.
func (b *RouteBuilder) displayName(handler any) string {
	if b.name != "" {
		return b.name
	}
	return handlerName(handler)
}

// handlerName returns the fully qualified function name of a handler
// value, or an empty string for non-function values.
func handlerName(handler any) string {
	value := reflect.ValueOf(handler)
	if value.Kind() != reflect.Func || value.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(value.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
