// Package routing implements the path-based request router and the
// middleware dispatch pipeline of the web server library.
//
// Route templates are plain paths with optional named placeholders:
// {name} captures a single path segment while {{name}} captures greedily
// across segments. Templates compile once into case-insensitive matchers
// and never change afterwards. A non-strict template also matches any
// deeper sub-path, which lets a single route or intermediate route guard
// a whole subtree.
//
// Dispatch runs every matching intermediate route in a fixed order (less
// specific first, registration order on ties), then the single most
// specific terminal route. An intermediate handler returning false, or
// any handler finalizing the response, stops the pipeline immediately.
package routing
