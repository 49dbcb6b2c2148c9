package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
	"gopkg.in/yaml.v3"
)

// VaultTag marks an inline vault encrypted variable.
const VaultTag = "!vault"

// Config controls how scalars are classified while parsing.
type Config struct {
	// IsEncrypted reports whether a scalar with the given tag and value holds
	// encrypted content.
	IsEncrypted func(tag, value string) bool
}

// DefaultConfig marks scalars tagged !vault as encrypted.
func DefaultConfig() Config {
	return Config{
		IsEncrypted: func(tag, _ string) bool {
			return tag == VaultTag
		},
	}
}

// Parse parses every YAML document in data and returns one root per document.
// Empty documents are skipped.
func Parse(data []byte, cfg Config) ([]Node, error) {
	if cfg.IsEncrypted == nil {
		cfg = DefaultConfig()
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var roots []Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidDocument, err)
		}

		b := builder{cfg: cfg, active: make(map[*yaml.Node]bool)}
		root, err := b.build(&doc, "")
		if err != nil {
			return nil, err
		}
		if root != nil {
			roots = append(roots, root)
		}
	}

	return roots, nil
}

type builder struct {
	cfg Config
	// active holds the alias targets currently being expanded.
	active map[*yaml.Node]bool
}

// build converts n. alias is the anchor name of the enclosing alias, if any.
func (b builder) build(n *yaml.Node, alias string) (Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return b.build(n.Content[0], alias)

	case yaml.MappingNode:
		m := &Mapping{Entries: make([]Entry, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := b.build(n.Content[i+1], alias)
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, Entry{Key: n.Content[i].Value, Value: value})
		}
		return m, nil

	case yaml.SequenceNode:
		s := &Sequence{Items: make([]Node, 0, len(n.Content))}
		for _, child := range n.Content {
			item, err := b.build(child, alias)
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, item)
		}
		return s, nil

	case yaml.AliasNode:
		target := n.Alias
		if target == nil {
			return nil, fmt.Errorf("%w: unresolved alias *%s at line %d", kerrors.ErrInvalidDocument, n.Value, n.Line)
		}
		if b.active[target] {
			return nil, fmt.Errorf("%w: recursive alias *%s at line %d", kerrors.ErrInvalidDocument, n.Value, n.Line)
		}
		b.active[target] = true
		defer delete(b.active, target)

		name := alias
		if name == "" {
			name = target.Anchor
		}
		return b.build(target, name)

	case yaml.ScalarNode:
		s := &Scalar{
			Value:   n.Value,
			Tag:     n.Tag,
			Anchor:  n.Anchor,
			Aliased: alias != "",
			Line:    n.Line,
			Column:  n.Column,
		}
		if s.Anchor == "" {
			s.Anchor = alias
		}
		s.Encrypted = b.cfg.IsEncrypted(n.Tag, n.Value)
		return s, nil
	}

	return nil, fmt.Errorf("%w: unknown node kind %d at line %d", kerrors.ErrInvalidDocument, n.Kind, n.Line)
}
