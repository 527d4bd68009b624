package generator_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apiwrappers "github.com/blairg23/create-api-wrappers"
	"github.com/blairg23/create-api-wrappers/generator"
)

const endpoints = `GET statuses/mentions_timeline count since_id max_id
GET statuses/user_timeline user_id screen_name

POST statuses/update status
POST direct_messages/new
GET statuses/user_timeline user_id count
`

func folder(t *testing.T, content string) apiwrappers.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, apiwrappers.DefaultEndpointsFile), []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write endpoints: %v", err)
	}
	return apiwrappers.DefaultConfig(dir)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read %s: %v", path, err)
	}
	return b
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := folder(t, endpoints)
	cfg.OpenAPIFile = "openapi.json"

	res, err := generator.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("cannot generate: %v", err)
	}
	if got := res.Catalog.Len(); got != 4 {
		t.Fatalf("want 4 wrapper methods, got %d", got)
	}
	want := []string{
		cfg.Path("api_methods.py"),
		cfg.Path("schema.json"),
		cfg.Path("openapi.json"),
	}
	if strings.Join(res.Files, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected files written. Got:\n%q\nWant:\n%q", res.Files, want)
	}

	stubs := readFile(t, cfg.Path("api_methods.py"))
	if n := bytes.Count(stubs, []byte("\ndef ")) + 1; n != 4 {
		t.Errorf("want 4 methods in the stub file, got %d", n)
	}
	if !bytes.Contains(stubs, []byte("def get_statuses_user_timeline(self, user_id='', count=''):")) {
		t.Errorf("the last duplicate should win in the stubs:\n%s", stubs)
	}
	schema := readFile(t, cfg.Path("schema.json"))
	if !bytes.Contains(schema, []byte(`"original_line": "GET statuses/user_timeline user_id count"`)) {
		t.Errorf("the last duplicate should win in the schema:\n%s", schema)
	}
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := folder(t, endpoints)
	cfg.OpenAPIFile = "openapi.json"

	first, err := generator.Run(ctx, cfg)
	if err != nil {
		t.Fatalf("cannot generate: %v", err)
	}
	outputs := make(map[string][]byte)
	for _, f := range first.Files {
		outputs[f] = readFile(t, f)
	}
	if _, err := generator.Run(ctx, cfg); err != nil {
		t.Fatalf("cannot generate again: %v", err)
	}
	for f, want := range outputs {
		if got := readFile(t, f); !bytes.Equal(got, want) {
			t.Errorf("%s changed between runs. Got:\n%s\nWant:\n%s", f, got, want)
		}
	}
}

func TestRunFailuresKeepOutputs(t *testing.T) {
	ctx := context.Background()

	t.Run("input not found", func(t *testing.T) {
		cfg := apiwrappers.DefaultConfig(t.TempDir())
		_, err := generator.Run(ctx, cfg)
		var notFound *apiwrappers.InputNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected an input not found error, got %v", err)
		}
		if _, err := os.Stat(cfg.Path(cfg.StubFile)); !os.IsNotExist(err) {
			t.Errorf("no stub file should be written")
		}
		if _, err := os.Stat(cfg.Path(cfg.SchemaFile)); !os.IsNotExist(err) {
			t.Errorf("no schema file should be written")
		}
	})

	t.Run("malformed line", func(t *testing.T) {
		cfg := folder(t, endpoints)
		if _, err := generator.Run(ctx, cfg); err != nil {
			t.Fatalf("cannot generate: %v", err)
		}
		before := readFile(t, cfg.Path(cfg.SchemaFile))

		if err := os.WriteFile(cfg.Path(cfg.EndpointsFile), []byte("GET a\nDELETE\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := generator.Run(ctx, cfg)
		var malformed *apiwrappers.MalformedLineError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected a malformed line error, got %v", err)
		}
		if malformed.Number != 2 {
			t.Errorf("unexpected line number %d", malformed.Number)
		}
		if got := readFile(t, cfg.Path(cfg.SchemaFile)); !bytes.Equal(got, before) {
			t.Errorf("previous schema should be kept")
		}
	})

	t.Run("output not writable", func(t *testing.T) {
		cfg := folder(t, endpoints)
		cfg.SchemaFile = filepath.Join("missing", "schema.json")
		_, err := generator.Run(ctx, cfg)
		var writeErr *apiwrappers.OutputWriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("expected an output write error, got %v", err)
		}
		if writeErr.Path != cfg.Path(cfg.SchemaFile) {
			t.Errorf("unexpected path %q", writeErr.Path)
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := folder(t, endpoints)
		cfg.SchemaFormat = "toml"
		if _, err := generator.Run(ctx, cfg); err == nil {
			t.Fatal("expected a configuration error")
		}
		if _, err := os.Stat(cfg.Path(cfg.StubFile)); !os.IsNotExist(err) {
			t.Errorf("no stub file should be written")
		}
	})
}

func TestRunVerbose(t *testing.T) {
	ctx := context.Background()
	var n int
	logger := func(string, ...interface{}) { n++ }

	cfg := folder(t, "GET a\n")
	if _, err := generator.Run(ctx, cfg, generator.WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("logger should not be called without verbose, got %d calls", n)
	}

	cfg.Verbose = true
	if _, err := generator.Run(ctx, cfg, generator.WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("logger should be called in verbose mode")
	}
}

// cancelAfterCheck reports no error on the first Err call and
// context.Canceled on every later one.
type cancelAfterCheck struct {
	context.Context
	checked bool
}

func (c *cancelAfterCheck) Err() error {
	if c.checked {
		return context.Canceled
	}
	c.checked = true
	return nil
}

func TestRunCancelledWhileWriting(t *testing.T) {
	cfg := folder(t, "GET a x\n")
	if _, err := generator.Run(context.Background(), cfg); err != nil {
		t.Fatalf("cannot generate: %v", err)
	}
	if err := os.WriteFile(cfg.Path(cfg.EndpointsFile), []byte("GET b y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := &cancelAfterCheck{Context: context.Background()}
	if _, err := generator.Run(ctx, cfg); err != nil {
		t.Fatalf("a run that started writing should finish: %v", err)
	}
	stubs := readFile(t, cfg.Path(cfg.StubFile))
	if !bytes.HasPrefix(stubs, []byte("def get_b(self, y=''):")) {
		t.Errorf("stub file not regenerated:\n%s", stubs)
	}
	schema := readFile(t, cfg.Path(cfg.SchemaFile))
	if !bytes.Contains(schema, []byte(`"wrapper_format": "get_b"`)) || bytes.Contains(schema, []byte("get_a")) {
		t.Errorf("schema file not regenerated:\n%s", schema)
	}
}

func TestRunCancelledBeforeWriting(t *testing.T) {
	cfg := folder(t, "GET a x\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := generator.Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(cfg.Path(cfg.StubFile)); !os.IsNotExist(err) {
		t.Errorf("no stub file should be written")
	}
}

func TestRunOpenAPIDoesNotBlockOutputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"repeated parameter", "GET a x x\n"},
		{"unsupported method", "FETCH foo\nGET a x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := folder(t, tt.input)
			cfg.OpenAPIFile = "openapi.json"
			res, err := generator.Run(context.Background(), cfg)
			if err != nil {
				t.Fatalf("cannot generate: %v", err)
			}
			if got := len(res.Files); got != 3 {
				t.Fatalf("want 3 files written, got %q", res.Files)
			}
			if !bytes.Contains(readFile(t, cfg.Path(cfg.StubFile)), []byte("def get_a(")) {
				t.Errorf("stub file should contain get_a")
			}
			if !bytes.Contains(readFile(t, cfg.Path(cfg.OpenAPIFile)), []byte(`"get_a"`)) {
				t.Errorf("openapi document should contain get_a")
			}
		})
	}
}
