package routing

import (
	"context"
	"net/http"
)

type contextKey int

const (
	templateContextKey contextKey = iota
	paramsContextKey
)

// bindTemplate attaches the matched template and its extracted
// parameters to the request. The request object is updated in place so
// that context values attached by earlier pipeline stages survive into
// later ones.
func bindTemplate(r *http.Request, t *Template) {
	ctx := context.WithValue(r.Context(), templateContextKey, t)
	if len(t.params) > 0 {
		if params, err := t.Params(r.URL.Path); err == nil {
			ctx = context.WithValue(ctx, paramsContextKey, params)
		}
	}
	*r = *r.WithContext(ctx)
}

// TemplateFromContext returns the template of the route matched for the
// current pipeline stage, or nil when dispatch has not matched one.
func TemplateFromContext(ctx context.Context) *Template {
	if t, ok := ctx.Value(templateContextKey).(*Template); ok {
		return t
	}
	return nil
}

// ParamsFromContext returns the path parameters extracted from the
// matched template. The returned map is shared; callers must not
// modify it.
func ParamsFromContext(ctx context.Context) map[string]string {
	if params, ok := ctx.Value(paramsContextKey).(map[string]string); ok {
		return params
	}
	return nil
}

// Param returns a single named path parameter, or the empty string when
// the parameter is absent.
func Param(ctx context.Context, name string) string {
	return ParamsFromContext(ctx)[name]
}
