package apiwrappers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL       = "https://api.twitter.com/1.1/"
	DefaultDocsURL       = "https://dev.twitter.com/rest/reference/"
	DefaultEndpointsFile = "endpoints.txt"
	DefaultStubFile      = "api_methods.py"
	DefaultSchemaFile    = "schema.json"
	DefaultVersion       = "1.0.0"

	// ConfigFile is the optional per folder configuration file.
	ConfigFile = "wrapper.yaml"
)

// Schema document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the settings of a single generator run.
//
// File names are relative to SourceFolder.
type Config struct {
	SourceFolder  string
	BaseURL       string
	DocsURL       string
	Verbose       bool
	EndpointsFile string
	StubFile      string
	SchemaFile    string
	SchemaFormat  string
	// OpenAPIFile enables the OpenAPI document when not empty.
	OpenAPIFile string
	// Title and Version fill the OpenAPI info object.
	Title   string
	Version string
}

// DefaultConfig returns the configuration used for a folder without a
// configuration file.
func DefaultConfig(folder string) Config {
	return Config{
		SourceFolder:  folder,
		BaseURL:       DefaultBaseURL,
		DocsURL:       DefaultDocsURL,
		EndpointsFile: DefaultEndpointsFile,
		StubFile:      DefaultStubFile,
		SchemaFile:    DefaultSchemaFile,
		SchemaFormat:  FormatJSON,
		Title:         filepath.Base(filepath.Clean(folder)),
		Version:       DefaultVersion,
	}
}

// LoadConfig returns the default configuration of the folder overridden by
// its configuration file, if there is one.
func LoadConfig(folder string) (Config, error) {
	cfg := DefaultConfig(folder)
	file := filepath.Join(folder, ConfigFile)
	b, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", file, err)
	}
	if err := cfg.decode(b); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", file, err)
	}
	return cfg, nil
}

func (c *Config) decode(b []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return err
	}
	if len(root.Content) == 0 {
		// empty file
		return nil
	}
	doc := root.Content[0]
	if err := assertKind(doc, yaml.MappingNode); err != nil {
		return err
	}
	return capture(doc.Content, captureMap{
		"base_url":       captureString(&c.BaseURL),
		"docs_url":       captureString(&c.DocsURL),
		"verbose":        captureBool(&c.Verbose),
		"endpoints_file": captureString(&c.EndpointsFile),
		"stub_file":      captureString(&c.StubFile),
		"schema_file":    captureString(&c.SchemaFile),
		"schema_format":  captureString(&c.SchemaFormat),
		"openapi_file":   captureString(&c.OpenAPIFile),
		"title":          captureString(&c.Title),
		"version":        captureString(&c.Version),
	})
}

// Validate reports the first setting that prevents a run.
func (c Config) Validate() error {
	switch {
	case c.EndpointsFile == "":
		return errors.New("no endpoints file configured")
	case c.StubFile == "":
		return errors.New("no stub file configured")
	case c.SchemaFile == "":
		return errors.New("no schema file configured")
	}
	if c.SchemaFormat != FormatJSON && c.SchemaFormat != FormatYAML {
		return fmt.Errorf("unsupported schema format %q", c.SchemaFormat)
	}
	return nil
}

// Path returns the location of a file inside the source folder.
func (c Config) Path(name string) string {
	return filepath.Join(c.SourceFolder, name)
}
