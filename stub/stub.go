// Package stub renders a catalog as Python wrapper methods.
//
// Every endpoint becomes a method named after its wrapper name, taking each
// parameter as a keyword argument that defaults to an empty string. The
// body builds the payload and hands it to a single request method of the
// wrapper class:
//
//	def get_statuses_mentions_timeline(self, count=''):
//		'''
//		Resource URL: https://api.twitter.com/1.1/statuses/mentions_timeline.json
//		Documentation URL: https://dev.twitter.com/rest/reference/get/statuses/mentions_timeline
//		'''
//		payload = {'count': count}
//		return self._request('GET', 'https://api.twitter.com/1.1/statuses/mentions_timeline.json', payload)
package stub

import (
	"bytes"
	"strings"

	apiwrappers "github.com/blairg23/create-api-wrappers"
)

const (
	DefaultIndent        = "\t"
	DefaultRequestMethod = "_request"
)

var quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

type config struct {
	indent  string
	request string
	logger  apiwrappers.Logger
}

// WithIndent sets the indentation of the method body.
func WithIndent(indent string) func(*config) {
	return func(c *config) {
		c.indent = indent
	}
}

// WithRequestMethod sets the name of the wrapper method every stub
// dispatches to.
func WithRequestMethod(name string) func(*config) {
	return func(c *config) {
		c.request = name
	}
}

// WithLogger sets a logger that receives every rendered method.
func WithLogger(l apiwrappers.Logger) func(*config) {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []func(*config)) config {
	c := config{
		indent:  DefaultIndent,
		request: DefaultRequestMethod,
	}
	for _, o := range opts {
		o(&c)
	}
	if c.logger == nil {
		c.logger = func(string, ...interface{}) {}
	}
	return c
}

// Render renders the methods of every endpoint in catalog order, separated
// by a blank line.
func Render(catalog *apiwrappers.Catalog, baseURL, docsURL string, opts ...func(*config)) []byte {
	c := newConfig(opts)
	var b bytes.Buffer
	for i, ep := range catalog.Endpoints() {
		if i > 0 {
			b.WriteByte('\n')
		}
		m := method(&c, ep, baseURL, docsURL)
		c.logger("stub %s:\n%s", ep.Name(), m)
		b.WriteString(m)
	}
	return b.Bytes()
}

// Method renders the method of a single endpoint.
func Method(ep apiwrappers.Endpoint, baseURL, docsURL string, opts ...func(*config)) string {
	c := newConfig(opts)
	return method(&c, ep, baseURL, docsURL)
}

func method(c *config, ep apiwrappers.Endpoint, baseURL, docsURL string) string {
	var (
		b        strings.Builder
		resource = ep.ResourceURL(baseURL)
	)
	b.WriteString("def ")
	b.WriteString(ep.Name())
	b.WriteString("(self")
	for _, p := range ep.Parameters {
		b.WriteString(", ")
		b.WriteString(p)
		b.WriteString("=''")
	}
	b.WriteString("):\n")

	line := func(s ...string) {
		b.WriteString(c.indent)
		for _, x := range s {
			b.WriteString(x)
		}
		b.WriteByte('\n')
	}
	line("'''")
	line("Resource URL: ", resource)
	line("Documentation URL: ", ep.DocumentationURL(docsURL))
	line("'''")

	var payload strings.Builder
	payload.WriteByte('{')
	for i, p := range ep.Parameters {
		if i > 0 {
			payload.WriteString(", ")
		}
		payload.WriteString(quote(p))
		payload.WriteString(": ")
		payload.WriteString(p)
	}
	payload.WriteByte('}')
	line("payload = ", payload.String())
	line("return self.", c.request, "(", quote(ep.Method), ", ", quote(resource), ", payload)")

	return b.String()
}

// quote returns s as a single quoted Python string literal.
func quote(s string) string {
	return "'" + quoter.Replace(s) + "'"
}
