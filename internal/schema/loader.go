package schema

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
)

// LoadFile loads and parses a YAML schema document from the given path.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return ParseFile(path, data)
}

// Parse parses YAML data into a Set.
func Parse(data []byte) (*Set, error) {
	return ParseFile("", data)
}

// ParseFile parses YAML data into a Set; filename is recorded in positions.
func ParseFile(filename string, data []byte) (*Set, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&doc)

	set, err := FromDocument(&doc, filename)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", displayName(filename), err)
	}

	return set, nil
}

func displayName(filename string) string {
	if filename == "" {
		return "<input>"
	}

	return filename
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = "1"
	}

	if doc.Root == "" && len(doc.Items) > 0 {
		doc.Root = doc.Items[0].Name
	}
}

// FromDocument converts a decoded document into a Set.
func FromDocument(doc *Document, filename string) (*Set, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}

	set := &Set{Root: doc.Root, Imports: maps.Clone(doc.Imports)}

	for i := range doc.Items {
		d := &doc.Items[i]

		kind, err := ParseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("items[%d] %s: %w", i, d.Name, err)
		}

		item := &Item{
			Name:  d.Name,
			Kind:  kind,
			Doc:   d.Doc,
			Attrs: withFile(d.Attrs, filename),
			Pos:   inFile(d.pos, filename),
		}

		for j := range d.Members {
			m, err := memberFromDoc(&d.Members[j], filename)
			if err != nil {
				return nil, fmt.Errorf("items[%d] %s: members[%d]: %w", i, d.Name, j, err)
			}

			item.Members = append(item.Members, m)
		}

		set.Items = append(set.Items, item)
	}

	return set, nil
}

func memberFromDoc(d *MemberDoc, filename string) (*Member, error) {
	sig, err := ParseType(d.Type)
	if err != nil {
		return nil, err
	}

	m := &Member{
		Name:  d.Name,
		Type:  sig,
		Ref:   d.Ref,
		Doc:   d.Doc,
		Attrs: withFile(d.Attrs, filename),
		Pos:   inFile(d.pos, filename),
	}

	for k := range d.Fields {
		f, err := memberFromDoc(&d.Fields[k], filename)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", k, err)
		}

		m.Fields = append(m.Fields, f)
	}

	return m, nil
}

func inFile(p common.Pos, filename string) common.Pos {
	p.File = filename
	return p
}

func withFile(sources AttrSources, filename string) []attr.Raw {
	if len(sources) == 0 {
		return nil
	}

	out := make([]attr.Raw, len(sources))

	for i, raw := range sources {
		raw.Pos = inFile(raw.Pos, filename)

		if len(raw.Entries) > 0 {
			entries := make(attr.Entries, len(raw.Entries))
			for j, e := range raw.Entries {
				e.Pos = inFile(e.Pos, filename)
				entries[j] = e
			}

			raw.Entries = entries
		}

		out[i] = raw
	}

	return out
}

// ToDocument converts a Set back into its document form.
func ToDocument(set *Set) *Document {
	doc := &Document{Version: "1", Root: set.Root, Imports: maps.Clone(set.Imports)}

	for _, it := range set.Items {
		d := ItemDoc{
			Name:  it.Name,
			Kind:  it.Kind.String(),
			Doc:   DocLines(it.Doc),
			Attrs: AttrSources(it.Attrs),
		}

		for _, m := range it.Members {
			d.Members = append(d.Members, memberToDoc(m))
		}

		doc.Items = append(doc.Items, d)
	}

	return doc
}

func memberToDoc(m *Member) MemberDoc {
	d := MemberDoc{
		Name:  m.Name,
		Type:  m.Type.String(),
		Ref:   m.Ref,
		Doc:   DocLines(m.Doc),
		Attrs: AttrSources(m.Attrs),
	}

	for _, f := range m.Fields {
		d.Fields = append(d.Fields, memberToDoc(f))
	}

	return d
}

// Marshal serializes a Set to YAML.
func Marshal(set *Set) ([]byte, error) {
	return yaml.Marshal(ToDocument(set))
}

// WriteFile writes a Set to the given path as YAML.
func WriteFile(set *Set, path string) error {
	data, err := Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
