package schema

import (
	"fmt"
	"strings"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
)

// Kind distinguishes options bags from command sets.
type Kind int

const (
	KindOptions  Kind = iota // struct-like: every member is an argument
	KindCommands             // enum-like: every member is a subcommand
)

// String returns the document spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindOptions:
		return "options"
	case KindCommands:
		return "commands"
	default:
		return common.UnknownStr
	}
}

// ParseKind parses a document kind. The empty string means options.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "options", "struct":
		return KindOptions, nil
	case "commands", "subcommands", "enum":
		return KindCommands, nil
	default:
		return 0, fmt.Errorf("unknown item kind %q (want options or commands)", s)
	}
}

// Item is one compiled unit.
type Item struct {
	// Name identifies the item inside its Set.
	Name string
	// Kind tells whether members are arguments or subcommands.
	Kind Kind
	// Doc holds the raw doc comment lines.
	Doc []string
	// Attrs holds the item-level attribute sources in declaration order.
	Attrs []attr.Raw
	// Members are the fields or variants in declaration order.
	Members []*Member
	// Pos locates the declaration.
	Pos common.Pos
}

// Member is one field of an options bag or one variant of a command set.
type Member struct {
	// Name is the declared identifier.
	Name string
	// Type is the declared type. For a command-set variant it optionally names
	// an options item that supplies the payload; zero for unit variants.
	Type TypeSig
	// Doc holds the raw doc comment lines.
	Doc []string
	// Attrs holds the member-level attribute sources in declaration order.
	Attrs []attr.Raw
	// Fields is the inline payload of a command-set variant.
	Fields []*Member
	// Ref names the nested item of a subcommand carrier. When empty the
	// carrier's (unwrapped) type name is used.
	Ref string
	// Pos locates the declaration.
	Pos common.Pos
}

// Set is the input of one compilation.
type Set struct {
	// Root names the item compiled into the top-level command.
	Root string
	// Items lists every item, in declaration order.
	Items []*Item
	// Imports maps package qualifiers used in types and parser functions
	// to import paths.
	Imports map[string]string
}

// NewSet creates a Set from a root name and its items.
func NewSet(root string, items ...*Item) *Set {
	return &Set{Root: root, Items: items}
}

// Lookup returns the item with the given name, or nil.
func (s *Set) Lookup(name string) *Item {
	if s == nil {
		return nil
	}

	for _, it := range s.Items {
		if it.Name == name {
			return it
		}
	}

	return nil
}

// RootItem returns the root item, or nil when it is missing.
func (s *Set) RootItem() *Item {
	return s.Lookup(s.Root)
}

// Names returns all item names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		names = append(names, it.Name)
	}

	return names
}
