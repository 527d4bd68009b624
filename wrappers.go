// Package apiwrappers turns a line oriented list of HTTP endpoints into an
// ordered catalog of wrapper methods. The stub, schema and openapi packages
// render that catalog into files.
package apiwrappers

import (
	"io"
	"strings"
)

// Parse reads an endpoints file and returns its catalog.
func Parse(file string, opts ...func(*parser)) (*Catalog, error) {
	return newParser(opts...).parseFile(file)
}

// ParseReader is like Parse but reads the endpoints from r.
func ParseReader(r io.Reader, opts ...func(*parser)) (*Catalog, error) {
	return newParser(opts...).parse(r)
}

// Logger receives diagnostic messages. It must be safe to call with any
// format verbs accepted by fmt.Sprintf.
type Logger func(format string, args ...interface{})

func nopLogger(string, ...interface{}) {}

// Endpoint is one parsed line of the endpoints file.
type Endpoint struct {
	// Method HTTP method, used verbatim.
	Method string
	// Path the resource after the base URL, it may contain slashes.
	Path string
	// Parameters query or body parameter names, in declaration order.
	// It is never nil for parsed endpoints.
	Parameters []string
	// Line the trimmed source line.
	Line string
	// Number the 1-based line number in the source, zero when unknown.
	Number int
}

// Name returns the wrapper name of the endpoint.
func (e Endpoint) Name() string {
	return WrapperName(e.Method, e.Path)
}

// ResourceURL returns the URL the endpoint is served at.
func (e Endpoint) ResourceURL(baseURL string) string {
	return baseURL + e.Path + ".json"
}

// DocumentationURL returns the URL of the endpoint reference page.
func (e Endpoint) DocumentationURL(docsURL string) string {
	return docsURL + strings.ToLower(e.Method) + "/" + e.Path
}

// WrapperName derives the method name used for an endpoint: method and path
// are joined by a space, slashes and spaces become underscores and the
// result is lower-cased.
//
// Examples:
//   - GET statuses/mentions_timeline => get_statuses_mentions_timeline
//   - GET /users//show => get__users__show
func WrapperName(method, path string) string {
	s := method + " " + path
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToLower(s)
}
