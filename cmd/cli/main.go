package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	apiwrappers "github.com/blairg23/create-api-wrappers"
	"github.com/blairg23/create-api-wrappers/generator"
	"github.com/blairg23/create-api-wrappers/internal/logging"
	"github.com/blairg23/create-api-wrappers/schema"
	"github.com/gobwas/cli"
	"golang.org/x/sync/errgroup"
)

func main() {
	cli.Main(cli.Commands{
		"generate": new(generateCmd),
		"inspect":  new(inspectCmd),
	})
}

// overrides holds the flags shared by every command. Empty values keep the
// folder configuration.
type overrides struct {
	baseURL      string
	docsURL      string
	schemaFormat string
	openAPIFile  string
	verbose      bool
}

func (o *overrides) define(fs *flag.FlagSet) {
	fs.StringVar(&o.baseURL, "base-url", o.baseURL, "API base URL, prefix of every resource URL")
	fs.StringVar(&o.docsURL, "docs-url", o.docsURL, "prefix of every documentation URL")
	fs.StringVar(&o.schemaFormat, "schema-format", o.schemaFormat, "schema document format (json|yaml)")
	fs.StringVar(&o.openAPIFile, "openapi", o.openAPIFile, "also write an OpenAPI document to this file of the folder")
	fs.BoolVar(&o.verbose, "v", o.verbose, "log every parsed line and rendered block")
}

// config loads the folder configuration and applies the overrides on top.
func (o *overrides) config(folder string) (apiwrappers.Config, error) {
	cfg, err := apiwrappers.LoadConfig(folder)
	if err != nil {
		return cfg, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.docsURL != "" {
		cfg.DocsURL = o.docsURL
	}
	if o.schemaFormat != "" {
		cfg.SchemaFormat = o.schemaFormat
	}
	if o.openAPIFile != "" {
		cfg.OpenAPIFile = o.openAPIFile
	}
	if o.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

type generateCmd struct {
	overrides
	jobs int
}

func (c *generateCmd) DefineFlags(fs *flag.FlagSet) {
	c.define(fs)
	fs.IntVar(&c.jobs, "jobs", c.jobs, "maximum folders generated at once, 0 means no limit")
}

// Run generates every folder given as argument. Folders are independent,
// the first failure cancels the ones not started yet.
func (c *generateCmd) Run(ctx context.Context, folders []string) error {
	if len(folders) == 0 {
		return errors.New("at least one source folder is required")
	}
	g, ctx := errgroup.WithContext(ctx)
	if c.jobs > 0 {
		g.SetLimit(c.jobs)
	}
	for _, folder := range folders {
		folder := folder
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := c.config(folder)
			if err != nil {
				return err
			}
			res, err := generator.Run(ctx, cfg, generator.WithLogger(logging.Prefixed(folder)))
			if err != nil {
				return fmt.Errorf("%s: %w", folder, err)
			}
			logging.Logf("%s: %d wrapper methods, wrote %v", folder, res.Catalog.Len(), res.Files)
			return nil
		})
	}
	return g.Wait()
}

type inspectCmd struct {
	overrides
}

func (c *inspectCmd) DefineFlags(fs *flag.FlagSet) {
	c.define(fs)
}

// Run prints the schema document of a folder as YAML without writing any
// file.
func (c *inspectCmd) Run(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("exactly one source folder is required")
	}
	if c.openAPIFile != "" {
		return errors.New("inspect writes no file, -openapi is not supported")
	}
	cfg, err := c.config(args[0])
	if err != nil {
		return err
	}
	var logger apiwrappers.Logger
	if cfg.Verbose {
		logger = logging.Prefixed(args[0])
	}
	catalog, err := apiwrappers.Parse(cfg.Path(cfg.EndpointsFile), apiwrappers.WithLogger(logger))
	if err != nil {
		return err
	}
	y, err := schema.Render(catalog, cfg.BaseURL, cfg.DocsURL, schema.WithFormat(apiwrappers.FormatYAML))
	if err != nil {
		return err
	}
	_, err = fmt.Print(string(y))
	return err
}
