package apiwrappers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// maxLineSize bounds a single endpoints line.
const maxLineSize = 1 << 20

type parser struct {
	logger Logger
}

// WithLogger sets the logger that receives every parsed line, its fields and
// the resulting wrapper name.
func WithLogger(l Logger) func(*parser) {
	return func(p *parser) {
		p.logger = l
	}
}

func newParser(opts ...func(*parser)) *parser {
	p := &parser{
		logger: nopLogger,
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = nopLogger
	}
	return p
}

func (p *parser) parseFile(file string) (*Catalog, error) {
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &InputNotFoundError{Path: file, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open file %q: %w", file, err)
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := p.parse(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse file %q: %w", file, err)
	}
	return c, nil
}

// parse builds the catalog line by line. It stops at the first malformed
// line, nothing parsed before it is returned.
func (p *parser) parse(r io.Reader) (*Catalog, error) {
	var (
		c    = NewCatalog()
		scan = bufio.NewScanner(r)
	)
	scan.Buffer(make([]byte, 0, 4096), maxLineSize)
	for n := 1; scan.Scan(); n++ {
		raw := scan.Text()
		ep, ok, err := parseLine(n, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		p.logger("line %d: %q", n, raw)
		p.logger("line %d: method=%s path=%s parameters=%v", n, ep.Method, ep.Path, ep.Parameters)

		name := ep.Name()
		p.logger("line %d: wrapper name %s", n, name)
		if prev, replaced := c.Add(ep); replaced {
			p.logger("line %d: %s replaces the endpoint from line %d", n, name, prev.Number)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("cannot read endpoints: %w", err)
	}
	return c, nil
}

// ParseLine parses a single endpoints line. Blank lines report ok false and
// no error.
func ParseLine(line string) (ep Endpoint, ok bool, err error) {
	return parseLine(0, line)
}

func parseLine(n int, raw string) (ep Endpoint, ok bool, err error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return ep, false, nil
	}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return ep, false, &MalformedLineError{Number: n, Line: line}
	}
	return Endpoint{
		Method:     tokens[0],
		Path:       tokens[1],
		Parameters: append(make([]string, 0, len(tokens)-2), tokens[2:]...),
		Line:       line,
		Number:     n,
	}, true, nil
}
