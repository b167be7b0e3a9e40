package schema

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
)

// Document is the YAML form of a Set.
type Document struct {
	// Version of the document schema.
	Version string `yaml:"version,omitempty"`
	// Root names the top-level item.
	Root string `yaml:"root"`
	// Imports maps package qualifiers to import paths.
	Imports map[string]string `yaml:"imports,omitempty"`
	// Items lists every item.
	Items []ItemDoc `yaml:"items"`
}

// ItemDoc is the YAML form of an Item.
type ItemDoc struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind,omitempty"`
	Doc     DocLines    `yaml:"doc,omitempty"`
	Attrs   AttrSources `yaml:"attrs,omitempty"`
	Members []MemberDoc `yaml:"members,omitempty"`

	pos common.Pos
}

// MemberDoc is the YAML form of a Member.
type MemberDoc struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type,omitempty"`
	Ref    string      `yaml:"ref,omitempty"`
	Doc    DocLines    `yaml:"doc,omitempty"`
	Attrs  AttrSources `yaml:"attrs,omitempty"`
	Fields []MemberDoc `yaml:"fields,omitempty"`

	pos common.Pos
}

// UnmarshalYAML records the item position.
func (d *ItemDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain ItemDoc
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}

	d.pos = nodePos(node)

	return nil
}

// UnmarshalYAML records the member position.
func (d *MemberDoc) UnmarshalYAML(node *yaml.Node) error {
	type plain MemberDoc
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}

	d.pos = nodePos(node)

	return nil
}

func nodePos(node *yaml.Node) common.Pos {
	return common.Pos{Line: node.Line, Column: node.Column}
}

// --- DocLines YAML methods ---

// DocLines holds doc comment lines. YAML accepts a string or a list of strings.
type DocLines []string

// UnmarshalYAML implements custom YAML unmarshaling for DocLines.
func (d *DocLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*d = strings.Split(strings.TrimRight(node.Value, "\n"), "\n")
		return nil

	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}

		*d = lines

		return nil

	default:
		return fmt.Errorf("line %d: doc: expected string or list of strings", node.Line)
	}
}

// MarshalYAML writes a single line as a string and several lines as a list.
func (d DocLines) MarshalYAML() (any, error) {
	if len(d) == 1 {
		return d[0], nil
	}

	return []string(d), nil
}

// --- AttrSources YAML methods ---

// AttrSources holds the attribute sources of an item or member.
type AttrSources []attr.Raw

// UnmarshalYAML implements custom YAML unmarshaling for AttrSources.
// Accepts:
//   - attribute text: "short=d,long=debug"
//   - an ordered mapping: {short: d, long: debug}
//   - a list of texts and single-key mappings: [subcommand, {name: pound}]
func (a *AttrSources) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = AttrSources{scalarSource(node)}
		return nil

	case yaml.MappingNode:
		entries, err := mappingEntries(node)
		if err != nil {
			return err
		}

		*a = AttrSources{attr.Structured(nodePos(node), entries...)}

		return nil

	case yaml.SequenceNode:
		out := make(AttrSources, 0, len(node.Content))

		for _, child := range node.Content {
			switch child.Kind {
			case yaml.ScalarNode:
				out = append(out, scalarSource(child))
			case yaml.MappingNode:
				entries, err := mappingEntries(child)
				if err != nil {
					return err
				}

				out = append(out, attr.Structured(nodePos(child), entries...))
			default:
				return fmt.Errorf("line %d: attrs: expected string or mapping", child.Line)
			}
		}

		*a = out

		return nil

	default:
		return fmt.Errorf("line %d: attrs: expected string, mapping or list", node.Line)
	}
}

func scalarSource(node *yaml.Node) attr.Raw {
	pos := nodePos(node)
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		pos = pos.Offset(1)
	}

	return attr.Text(node.Value, pos)
}

func mappingEntries(node *yaml.Node) (attr.Entries, error) {
	entries := make(attr.Entries, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: attrs: key must be a string", key.Line)
		}

		lit, err := literal(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: attrs.%s: %w", value.Line, key.Value, err)
		}

		entries = append(entries, attr.Entry{Key: key.Value, Value: lit, Pos: nodePos(key)})
	}

	return entries, nil
}

func literal(node *yaml.Node) (attr.Literal, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch {
		case node.Tag == "!!null":
			return attr.Bool(true), nil
		case node.Tag == "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return attr.Literal{}, err
			}

			return attr.Bool(b), nil
		default:
			return attr.String(node.Value), nil
		}

	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))

		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return attr.Literal{}, errors.New("list items must be scalars")
			}

			items = append(items, child.Value)
		}

		return attr.List(items...), nil

	case yaml.MappingNode:
		entries, err := mappingEntries(node)
		if err != nil {
			return attr.Literal{}, err
		}

		return attr.Group(entries...), nil

	default:
		return attr.Literal{}, errors.New("unsupported value")
	}
}

// MarshalYAML writes structured sources as one mapping when possible.
func (a AttrSources) MarshalYAML() (any, error) {
	if len(a) == 1 && a[0].Text != "" && len(a[0].Entries) == 0 {
		return a[0].Text, nil
	}

	allStructured := true
	for _, raw := range a {
		if raw.Text != "" {
			allStructured = false
		}
	}

	if allStructured {
		var entries attr.Entries
		for _, raw := range a {
			entries = append(entries, raw.Entries...)
		}

		return entriesNode(entries), nil
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}

	for _, raw := range a {
		if len(raw.Entries) > 0 {
			seq.Content = append(seq.Content, entriesNode(raw.Entries))
		}

		if raw.Text != "" {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: raw.Text})
		}
	}

	return seq, nil
}

func entriesNode(entries attr.Entries) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}

	for _, e := range entries {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Key},
			literalNode(e.Value),
		)
	}

	return m
}

func literalNode(lit attr.Literal) *yaml.Node {
	switch lit.Kind {
	case attr.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: lit.Text}
	case attr.KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range lit.Items {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
		}

		return seq
	case attr.KindGroup:
		return entriesNode(lit.Group)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: lit.Text}
	}
}
