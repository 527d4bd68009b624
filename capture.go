package apiwrappers

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

type captureFunc func(node *yaml.Node) error

type captureMap map[string]captureFunc

// capture runs the capture function of every key found in a mapping node
// content. Keys without a capture function are an error.
func capture(content []*yaml.Node, captures captureMap) error {
	pairs, err := mapPairs(content)
	if err != nil {
		return err
	}
	for _, v := range pairs {
		fx, ok := captures[v.key]
		if !ok {
			return fmt.Errorf("unsupported key %q at line %d", v.key, v.line)
		}
		if err := fx(v.node); err != nil {
			return fmt.Errorf("key %q: %w", v.key, err)
		}
	}
	return nil
}

// captureString stores a scalar value. A null value leaves s untouched.
func captureString(s *string) captureFunc {
	return func(node *yaml.Node) error {
		if isNull(node) {
			return nil
		}
		if err := assertScalar(node); err != nil {
			return err
		}
		*s = node.Value
		return nil
	}
}

func captureBool(b *bool) captureFunc {
	return func(node *yaml.Node) error {
		if isNull(node) {
			return nil
		}
		if err := assertScalar(node); err != nil {
			return err
		}
		x, err := strconv.ParseBool(node.Value)
		if err != nil {
			return fmt.Errorf("expected boolean string representation but got %q", node.Value)
		}
		*b = x
		return nil
	}
}

type pair struct {
	key  string
	line int
	node *yaml.Node
}

func mapPairs(nodes []*yaml.Node) ([]pair, error) {
	length := len(nodes)
	if length%2 != 0 {
		return nil, fmt.Errorf("asked for pairs on an odd number of nodes: %d", length)
	}
	pairs := make([]pair, length/2)
	for i := 0; i < length; i += 2 {
		key, value := nodes[i], nodes[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("first element of a map pair should be a scalar, got: %v", key.Kind)
		}
		pairs[i/2] = pair{
			key:  key.Value,
			line: key.Line,
			node: value,
		}
	}
	return pairs, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func assertScalar(node *yaml.Node) error {
	if got := node.Kind; got != yaml.ScalarNode {
		return fmt.Errorf("expected a scalar value at line %d", node.Line)
	}
	return nil
}

func assertKind(node *yaml.Node, want yaml.Kind) error {
	if got := node.Kind; got != want {
		return fmt.Errorf("expected node kind %v at line %d, got %v", want, node.Line, got)
	}
	return nil
}
