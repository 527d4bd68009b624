// Package schema renders a catalog as a structured document describing every
// endpoint.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	apiwrappers "github.com/blairg23/create-api-wrappers"
	"gopkg.in/yaml.v3"
)

const (
	DefaultJSONIndent = "  "
	DefaultYAMLIndent = 2
)

// Document describes the wrapped API.
type Document struct {
	// BaseURL prefix of every resource URL.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// DocsURL prefix of every documentation URL.
	DocsURL string `json:"docs_url" yaml:"docs_url"`
	// Endpoints in catalog order.
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Endpoint describes a single wrapper method.
type Endpoint struct {
	// OriginalLine the endpoints line the method comes from.
	OriginalLine string `json:"original_line" yaml:"original_line"`
	// WrapperFormat the wrapper name.
	WrapperFormat string `json:"wrapper_format" yaml:"wrapper_format"`
	// Parameters parameter names, empty but never missing.
	Parameters []string `json:"parameters" yaml:"parameters"`
	// ResourceURL URL of the resource.
	ResourceURL string `json:"resource_url" yaml:"resource_url"`
	// DocumentationURL URL of the reference page.
	DocumentationURL string `json:"documentation_url" yaml:"documentation_url"`
}

type config struct {
	format string
	indent string
	logger apiwrappers.Logger
}

// WithFormat selects apiwrappers.FormatJSON (default) or
// apiwrappers.FormatYAML.
func WithFormat(format string) func(*config) {
	return func(c *config) {
		c.format = format
	}
}

// WithIndent sets the JSON indentation.
func WithIndent(indent string) func(*config) {
	return func(c *config) {
		c.indent = indent
	}
}

// WithLogger sets a logger that receives every serialized endpoint.
func WithLogger(l apiwrappers.Logger) func(*config) {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []func(*config)) config {
	c := config{
		format: apiwrappers.FormatJSON,
		indent: DefaultJSONIndent,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Build returns the document of a catalog.
func Build(catalog *apiwrappers.Catalog, baseURL, docsURL string, opts ...func(*config)) Document {
	c := newConfig(opts)
	eps := catalog.Endpoints()
	doc := Document{
		BaseURL:   baseURL,
		DocsURL:   docsURL,
		Endpoints: make([]Endpoint, 0, len(eps)),
	}
	for _, ep := range eps {
		x := Endpoint{
			OriginalLine:     ep.Line,
			WrapperFormat:    ep.Name(),
			Parameters:       append(make([]string, 0, len(ep.Parameters)), ep.Parameters...),
			ResourceURL:      ep.ResourceURL(baseURL),
			DocumentationURL: ep.DocumentationURL(docsURL),
		}
		if c.logger != nil {
			if b, err := json.Marshal(x); err == nil {
				c.logger("schema %s: %s", x.WrapperFormat, b)
			}
		}
		doc.Endpoints = append(doc.Endpoints, x)
	}
	return doc
}

// Marshal serializes the document. JSON output is indented and ends with a
// new line, HTML characters are not escaped.
func Marshal(doc Document, opts ...func(*config)) ([]byte, error) {
	c := newConfig(opts)
	var buf bytes.Buffer
	switch c.format {
	case apiwrappers.FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", c.indent)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("cannot marshal schema as JSON: %w", err)
		}
	case apiwrappers.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(DefaultYAMLIndent)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("cannot marshal schema as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("cannot marshal schema as YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q", c.format)
	}
	return buf.Bytes(), nil
}

// Render builds and serializes the document of a catalog.
func Render(catalog *apiwrappers.Catalog, baseURL, docsURL string, opts ...func(*config)) ([]byte, error) {
	return Marshal(Build(catalog, baseURL, docsURL, opts...), opts...)
}
