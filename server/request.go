package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/indyteo/WebServerAPI/routing"
)

var validate = validator.New()

// Param returns the value captured for the named placeholder of the
// route the request matched.
func Param(r *http.Request, name string) (string, bool) {
	value, ok := routing.ParamsFromContext(r.Context())[name]
	return value, ok
}

// Params returns every captured placeholder value of the request.
func Params(r *http.Request) map[string]string {
	return routing.ParamsFromContext(r.Context())
}

// DecodeJSON decodes the request body into v and validates it. Unknown
// fields in the body are rejected. Struct targets are validated with
// their field tags.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate request body: %w", err)
	}
	return nil
}
