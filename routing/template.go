package routing

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
)

// strippedToken replaces every placeholder when computing the stripped
// form of a template. Two templates that differ only in placeholder
// names therefore have identical stripped forms.
const strippedToken = "{}"

// templateIDs assigns each compiled template a unique, monotonically
// increasing id, used only as a deterministic ordering tie-break.
var templateIDs atomic.Int64

// Template is an immutable compiled route template. It knows how to
// match a request path and method and how to extract the values captured
// by its placeholders.
type Template struct {
	raw      string
	method   string
	strict   bool
	name     string
	id       int64
	stripped string
	pattern  *regexp.Regexp
	params   []string
}

// span is a tokenized region of a template: either literal text or a
// placeholder capture.
type span struct {
	text  string
	param bool
	multi bool
}

// compileTemplate normalizes and compiles a route template. The method
// is stored uppercase; an empty method matches any method.
func compileTemplate(route, method string, strict bool, name string) (*Template, error) {
	if strings.TrimSpace(route) == "" {
		return nil, &TemplateError{Route: route, Message: "empty route", Cause: ErrEmptyRoute}
	}
	route = NormalizeRoute(route)

	var pattern, stripped strings.Builder
	pattern.WriteString("(?i)^")

	var params []string
	for _, s := range tokenize(route) {
		if s.param {
			params = append(params, s.text)
			// Positional groups instead of named ones: they allow a
			// placeholder name to repeat within a template, with the
			// last occurrence winning on extraction.
			if s.multi {
				pattern.WriteString("(.+)")
			} else {
				pattern.WriteString("([^/]+)")
			}
			stripped.WriteString(strippedToken)
		} else {
			pattern.WriteString(regexp.QuoteMeta(s.text))
			stripped.WriteString(s.text)
		}
	}

	if strict {
		pattern.WriteString("$")
	} else if !strings.HasSuffix(route, "/") {
		// Mountable prefix: the template also matches any deeper
		// sub-path, but only at a segment boundary.
		pattern.WriteString("(?:/|$)")
	}

	compiled, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, &TemplateError{Route: route, Message: "invalid pattern", Cause: err}
	}

	if name == "" {
		name = "Unnamed route"
	}

	return &Template{
		raw:      route,
		method:   strings.ToUpper(method),
		strict:   strict,
		name:     name,
		id:       templateIDs.Add(1),
		stripped: stripped.String(),
		pattern:  compiled,
		params:   params,
	}, nil
}

// NormalizeRoute collapses repeated slashes, drops empty segments and
// returns a path with exactly one leading slash and no trailing slash.
// The root route normalizes to "/".
func NormalizeRoute(route string) string {
	var b strings.Builder
	for _, segment := range strings.Split(route, "/") {
		if segment == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(segment)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// tokenize splits a template into literal and placeholder spans. A "{"
// that does not open a well-formed placeholder is literal text.
func tokenize(route string) []span {
	var spans []span
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, span{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(route); {
		if route[i] == '{' {
			if name, next, multi, ok := scanPlaceholder(route, i); ok {
				flush()
				spans = append(spans, span{text: name, param: true, multi: multi})
				i = next
				continue
			}
		}
		literal.WriteByte(route[i])
		i++
	}
	flush()

	return spans
}

// scanPlaceholder reads a {name} or {{name}} placeholder starting at the
// opening brace. Names start with a letter and contain only letters and
// digits.
func scanPlaceholder(route string, i int) (name string, next int, multi bool, ok bool) {
	j := i + 1
	if j < len(route) && route[j] == '{' {
		multi = true
		j++
	}

	start := j
	if j >= len(route) || !isAlpha(route[j]) {
		return "", 0, false, false
	}
	j++
	for j < len(route) && isAlphaNum(route[j]) {
		j++
	}
	name = route[start:j]

	if multi {
		if strings.HasPrefix(route[j:], "}}") {
			return name, j + 2, true, true
		}
		// "{{name}" is not a greedy placeholder; the leading brace
		// stays literal and "{name}" is rescanned on its own.
		return "", 0, false, false
	}
	if j < len(route) && route[j] == '}' {
		return name, j + 1, false, true
	}
	return "", 0, false, false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

// Raw returns the normalized template string.
func (t *Template) Raw() string {
	return t.raw
}

// Method returns the HTTP method the template is bound to, or the empty
// string when the template matches any method.
func (t *Template) Method() string {
	return t.method
}

// IsStrict reports whether the template requires the full request path
// to match, instead of acting as a subtree prefix.
func (t *Template) IsStrict() bool {
	return t.strict
}

// Name returns the display name of the template.
func (t *Template) Name() string {
	return t.name
}

// ID returns the unique construction id of the template.
func (t *Template) ID() int64 {
	return t.id
}

// Stripped returns the template with every placeholder replaced by a
// neutral token. Its length is the specificity measure used for both
// best-match selection and intermediate route ordering.
func (t *Template) Stripped() string {
	return t.stripped
}

// Len returns the length of the stripped form.
func (t *Template) Len() int {
	return len(t.stripped)
}

// ParamNames returns the placeholder names in order of appearance.
func (t *Template) ParamNames() []string {
	names := make([]string, len(t.params))
	copy(names, t.params)
	return names
}

// Match reports whether the given path and method match the template.
// Matching is case-insensitive.
func (t *Template) Match(path, method string) bool {
	if t.method != "" && !strings.EqualFold(t.method, method) {
		return false
	}
	return t.pattern.MatchString(path)
}

// Params extracts the placeholder values captured from the given path.
// The path must already match the template; calling Params on a path
// that does not match is a programmer error and returns an
// UnmatchedPathError. When a placeholder name repeats, the last
// occurrence wins.
func (t *Template) Params(path string) (map[string]string, error) {
	matches := t.pattern.FindStringSubmatch(path)
	if matches == nil {
		return nil, &UnmatchedPathError{Route: t.raw, Path: path}
	}

	params := make(map[string]string, len(t.params))
	for i, name := range t.params {
		params[name] = matches[i+1]
	}
	return params, nil
}

// String returns a loggable description of the template.
func (t *Template) String() string {
	method := t.method
	if method == "" {
		method = "*"
	}
	return fmt.Sprintf("%s %s (%d: %s)", method, t.raw, t.id, t.name)
}
