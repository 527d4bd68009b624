// Package openapi renders a catalog as an OpenAPI 3 document.
package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	apiwrappers "github.com/blairg23/create-api-wrappers"
	"github.com/getkin/kin-openapi/openapi3"
)

// SpecVersion is the OpenAPI version of the generated documents.
const SpecVersion = "3.0.3"

const (
	DefaultJSONIndent          = "  "
	DefaultResponseDescription = "Successful response."
)

var pathParam = regexp.MustCompile(`{(\w+)}`)

// Info identifies the wrapped API.
type Info struct {
	Title   string
	Version string
}

type config struct {
	indent string
	logger apiwrappers.Logger
}

// WithIndent sets the JSON indentation.
func WithIndent(indent string) func(*config) {
	return func(c *config) {
		c.indent = indent
	}
}

// WithLogger sets a logger that receives every generated operation.
func WithLogger(l apiwrappers.Logger) func(*config) {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []func(*config)) config {
	c := config{
		indent: DefaultJSONIndent,
	}
	for _, o := range opts {
		o(&c)
	}
	if c.logger == nil {
		c.logger = func(string, ...interface{}) {}
	}
	return c
}

// Build returns the validated OpenAPI document of a catalog.
//
// Each endpoint becomes the operation of its method on "/<path>.json", with
// the wrapper name as operation ID and one optional string query parameter
// per endpoint parameter, repeated names collapsed. Path segments like {id}
// are declared as path parameters. Endpoints an OpenAPI operation cannot
// express, an unknown HTTP method or a method and path already taken by
// another wrapper name, are left out and logged.
func Build(ctx context.Context, catalog *apiwrappers.Catalog, info Info, baseURL, docsURL string, opts ...func(*config)) (*openapi3.T, error) {
	c := newConfig(opts)
	doc := &openapi3.T{
		OpenAPI: SpecVersion,
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: baseURL},
		},
		Paths: openapi3.NewPaths(),
	}
	for _, ep := range catalog.Endpoints() {
		method := strings.ToUpper(ep.Method)
		if !supportedMethod(method) {
			c.logger("openapi %s: skipped, unsupported HTTP method %q", ep.Name(), ep.Method)
			continue
		}
		key := "/" + strings.TrimPrefix(ep.Path, "/") + ".json"
		item := doc.Paths.Value(key)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(key, item)
		}
		if prev := item.GetOperation(method); prev != nil {
			c.logger("openapi %s: skipped, %s %s is already defined by %s", ep.Name(), method, key, prev.OperationID)
			continue
		}
		op := operation(ep, docsURL)
		c.logger("openapi %s: %s %s", op.OperationID, method, key)
		item.SetOperation(method, op)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

func operation(ep apiwrappers.Endpoint, docsURL string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = ep.Name()
	op.Summary = ep.Line
	op.ExternalDocs = &openapi3.ExternalDocs{
		URL: ep.DocumentationURL(docsURL),
	}
	for _, name := range unique(pathParams(ep.Path)) {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
	}
	for _, name := range unique(ep.Parameters) {
		op.AddParameter(openapi3.NewQueryParameter(name).WithSchema(openapi3.NewStringSchema()))
	}
	responses := new(openapi3.Responses)
	responses.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(DefaultResponseDescription),
	})
	op.Responses = responses
	return op
}

func pathParams(path string) (names []string) {
	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		names = append(names, m[1])
	}
	return names
}

// unique drops repeated names, keeping the first occurrence.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodConnect, http.MethodDelete, http.MethodGet, http.MethodHead,
		http.MethodOptions, http.MethodPatch, http.MethodPost, http.MethodPut, http.MethodTrace:
		return true
	}
	return false
}

// Marshal serializes the document as indented JSON ending with a new line.
func Marshal(doc *openapi3.T, opts ...func(*config)) ([]byte, error) {
	c := newConfig(opts)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", c.indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("cannot marshal OpenAPI document: %w", err)
	}
	return buf.Bytes(), nil
}

// Render builds and serializes the document of a catalog.
func Render(ctx context.Context, catalog *apiwrappers.Catalog, info Info, baseURL, docsURL string, opts ...func(*config)) ([]byte, error) {
	doc, err := Build(ctx, catalog, info, baseURL, docsURL, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(doc, opts...)
}
