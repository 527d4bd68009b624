// Package generator runs the whole pipeline for one source folder: it
// parses the endpoints file and writes every configured artifact.
package generator

import (
	"context"
	"fmt"
	"os"

	apiwrappers "github.com/blairg23/create-api-wrappers"
	"github.com/blairg23/create-api-wrappers/openapi"
	"github.com/blairg23/create-api-wrappers/schema"
	"github.com/blairg23/create-api-wrappers/stub"
	"github.com/google/renameio/v2"
)

// FileMode of the generated files.
const FileMode os.FileMode = 0o644

// Generator generates the artifacts of one folder.
type Generator struct {
	cfg    apiwrappers.Config
	logger apiwrappers.Logger
}

// Result describes a successful run.
type Result struct {
	// Catalog parsed from the endpoints file.
	Catalog *apiwrappers.Catalog
	// Files written, in write order.
	Files []string
}

type artifact struct {
	path string
	data []byte
}

// WithLogger sets the logger used when the configuration is verbose.
func WithLogger(l apiwrappers.Logger) func(*Generator) {
	return func(g *Generator) {
		g.logger = l
	}
}

// New returns a generator for the given configuration. Diagnostics are only
// emitted when cfg.Verbose is set and a logger was given.
func New(cfg apiwrappers.Config, opts ...func(*Generator)) *Generator {
	g := &Generator{
		cfg: cfg,
	}
	for _, o := range opts {
		o(g)
	}
	if !cfg.Verbose {
		g.logger = nil
	}
	return g
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger(format, args...)
	}
}

// Run is a shortcut for New(cfg, opts...).Run(ctx).
func Run(ctx context.Context, cfg apiwrappers.Config, opts ...func(*Generator)) (*Result, error) {
	return New(cfg, opts...).Run(ctx)
}

// Run parses the endpoints file and replaces every artifact.
//
// All artifacts are rendered before the first one is written, so a parse or
// render failure leaves the folder untouched. Cancellation is only honored
// before the first write. Each file is replaced atomically.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	cfg := g.cfg
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	catalog, err := apiwrappers.Parse(cfg.Path(cfg.EndpointsFile), apiwrappers.WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	g.logf("parsed %d endpoints from %s", catalog.Len(), cfg.Path(cfg.EndpointsFile))

	artifacts, err := g.render(ctx, catalog)
	if err != nil {
		return nil, err
	}

	// Cancellation is checked once, past this point every artifact is written.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{
		Catalog: catalog,
	}
	for _, a := range artifacts {
		if err := renameio.WriteFile(a.path, a.data, FileMode); err != nil {
			return nil, &apiwrappers.OutputWriteError{Path: a.path, Err: err}
		}
		g.logf("wrote %s (%d bytes)", a.path, len(a.data))
		res.Files = append(res.Files, a.path)
	}
	return res, nil
}

func (g *Generator) render(ctx context.Context, catalog *apiwrappers.Catalog) ([]artifact, error) {
	cfg := g.cfg
	artifacts := []artifact{{
		path: cfg.Path(cfg.StubFile),
		data: stub.Render(catalog, cfg.BaseURL, cfg.DocsURL, stub.WithLogger(g.logger)),
	}}

	doc, err := schema.Render(catalog, cfg.BaseURL, cfg.DocsURL,
		schema.WithFormat(cfg.SchemaFormat),
		schema.WithLogger(g.logger),
	)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, artifact{
		path: cfg.Path(cfg.SchemaFile),
		data: doc,
	})

	if cfg.OpenAPIFile == "" {
		return artifacts, nil
	}
	info := openapi.Info{
		Title:   cfg.Title,
		Version: cfg.Version,
	}
	oas, err := openapi.Render(ctx, catalog, info, cfg.BaseURL, cfg.DocsURL, openapi.WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	return append(artifacts, artifact{
		path: cfg.Path(cfg.OpenAPIFile),
		data: oas,
	}), nil
}
