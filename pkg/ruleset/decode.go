package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	patterns map[string]string
}

// WithNamedPatterns sets the expressions that "ref" entries resolve
// against, replacing DefaultNamedPatterns.
func WithNamedPatterns(patterns map[string]string) DecodeOption {
	return func(c *decodeConfig) {
		if patterns != nil {
			c.patterns = patterns
		}
	}
}

type ruleEntry struct {
	Kind    string `yaml:"kind"`
	Type    string `yaml:"type"`
	Pattern string `yaml:"pattern"`
	Regex   string `yaml:"regex"`
	Ref     string `yaml:"ref"`
}

// Decode parses a YAML rule document.
func Decode(data []byte, opts ...DecodeOption) (Spec, error) {
	return DecodeReader(bytes.NewReader(data), opts...)
}

// DecodeReader parses a YAML rule document from r. Field order inside each
// scope is preserved. An empty document yields an empty Spec.
func DecodeReader(r io.Reader, opts ...DecodeOption) (Spec, error) {
	cfg := &decodeConfig{patterns: DefaultNamedPatterns()}
	for _, opt := range opts {
		opt(cfg)
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Spec{}, nil
		}
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return Spec{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of scopes (line %d)", ErrInvalidDocument, root.Line)
	}

	spec := make(Spec, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		scope := root.Content[i].Value
		fields, err := cfg.decodeScope(scope, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		spec[scope] = fields
	}
	return spec, nil
}

func (c *decodeConfig) decodeScope(scope string, node *yaml.Node) (*FieldRules, error) {
	fields := NewFieldRules()
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return fields, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: scope %q must be a mapping of fields (line %d)", ErrInvalidDocument, scope, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var entry ruleEntry
		if err := node.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: field %q in scope %q: %v", ErrInvalidDocument, name, scope, err)
		}
		rule, err := c.buildRule(entry)
		if err != nil {
			return nil, fmt.Errorf("field %q in scope %q: %w", name, scope, err)
		}
		fields.Set(name, rule)
	}
	return fields, nil
}

func (c *decodeConfig) buildRule(e ruleEntry) (FieldRule, error) {
	kind := e.Kind
	if kind == "" {
		kind = e.Type
	}

	switch Kind(kind) {
	case KindPattern, kindRegexAlias:
		expr := e.Pattern
		if expr == "" {
			expr = e.Regex
		}
		if expr == "" && e.Ref != "" {
			named, ok := c.patterns[e.Ref]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownPatternRef, e.Ref)
			}
			expr = named
		}
		if expr == "" {
			return nil, ErrMissingPattern
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		return Pattern(re), nil
	case KindGroupPresence, kindRadioAlias:
		return Group(), nil
	default:
		return Unknown(kind), nil
	}
}
