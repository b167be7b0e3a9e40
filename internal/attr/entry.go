package attr

import (
	"fmt"
	"strconv"
	"strings"

	"argspec-generator/internal/common"
)

// Source tells Collect which key a doc comment is stored under.
type Source int

const (
	// ItemLevel attributes belong to a schema item; docs become "about".
	ItemLevel Source = iota
	// MemberLevel attributes belong to a field or variant; docs become "help".
	MemberLevel
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case ItemLevel:
		return "item"
	case MemberLevel:
		return "member"
	default:
		return common.UnknownStr
	}
}

// DocKey returns the attribute key a doc comment contributes for this source.
func (s Source) DocKey() string {
	if s == ItemLevel {
		return "about"
	}

	return "help"
}

// Kind is the shape of a literal attribute value.
type Kind int

const (
	KindString Kind = iota // "text" or bare word
	KindBool               // bare key, or a YAML boolean
	KindList               // YAML sequence of scalars
	KindGroup              // key(entry, ...)
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindGroup:
		return "group"
	default:
		return common.UnknownStr
	}
}

// Literal is the value half of an attribute entry.
type Literal struct {
	Kind  Kind
	Text  string
	Items []string
	Group []Entry
}

// String creates a string literal.
func String(s string) Literal {
	return Literal{Kind: KindString, Text: s}
}

// Bool creates a boolean literal.
func Bool(b bool) Literal {
	return Literal{Kind: KindBool, Text: strconv.FormatBool(b)}
}

// List creates a list literal.
func List(items ...string) Literal {
	return Literal{Kind: KindList, Items: items}
}

// Group creates a nested literal such as parse(try_from_str=parseHex).
func Group(entries ...Entry) Literal {
	return Literal{Kind: KindGroup, Group: entries}
}

// AsString returns the literal as text. Lists are joined with ",".
func (l Literal) AsString() string {
	switch l.Kind {
	case KindList:
		return strings.Join(l.Items, ",")
	case KindGroup:
		parts := make([]string, 0, len(l.Group))
		for _, e := range l.Group {
			parts = append(parts, e.String())
		}

		return strings.Join(parts, ",")
	default:
		return l.Text
	}
}

// AsBool interprets the literal as a boolean.
func (l Literal) AsBool() (bool, error) {
	if l.Kind != KindString && l.Kind != KindBool {
		return false, fmt.Errorf("expected boolean, got %s", l.Kind)
	}

	b, err := strconv.ParseBool(l.Text)
	if err != nil {
		return false, fmt.Errorf("expected boolean, got %q", l.Text)
	}

	return b, nil
}

// AsList returns list items, or splits a string on sep. Empty items are dropped.
func (l Literal) AsList(sep string) []string {
	var raw []string

	switch l.Kind {
	case KindList:
		raw = l.Items
	case KindString:
		raw = strings.Split(l.Text, sep)
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

// Entry is a single key/value attribute.
type Entry struct {
	Key   string
	Value Literal
	Pos   common.Pos
}

// String formats the entry back into tag grammar.
func (e Entry) String() string {
	switch e.Value.Kind {
	case KindBool:
		if e.Value.Text == "true" {
			return e.Key
		}

		return e.Key + "=false"
	case KindGroup:
		return e.Key + "(" + e.Value.AsString() + ")"
	default:
		return e.Key + "=" + quote(e.Value.AsString())
	}
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, ",()='\"\\ \t") {
		return s
	}

	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)

	return "'" + r.Replace(s) + "'"
}

// Entries is an ordered attribute list. Lookups are last-write-wins.
type Entries []Entry

// Lookup returns the last entry with the given key.
func (l Entries) Lookup(key string) (Entry, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Key == key {
			return l[i], true
		}
	}

	return Entry{}, false
}

// Has reports whether any entry uses the key.
func (l Entries) Has(key string) bool {
	_, ok := l.Lookup(key)
	return ok
}

// Get returns the last value for key as text, or "" when absent.
func (l Entries) Get(key string) string {
	if e, ok := l.Lookup(key); ok {
		return e.Value.AsString()
	}

	return ""
}

// Effective returns one entry per key, in order of first appearance,
// carrying the value of the last appearance.
func (l Entries) Effective() Entries {
	index := make(map[string]int, len(l))
	out := make(Entries, 0, len(l))

	for _, e := range l {
		if i, ok := index[e.Key]; ok {
			out[i] = e
			continue
		}

		index[e.Key] = len(out)
		out = append(out, e)
	}

	return out
}

// Without returns the entries whose key is not in keys.
func (l Entries) Without(keys ...string) Entries {
	skip := make(map[string]bool, len(keys))
	for _, k := range keys {
		skip[k] = true
	}

	out := make(Entries, 0, len(l))
	for _, e := range l {
		if !skip[e.Key] {
			out = append(out, e)
		}
	}

	return out
}

// Environment is a read-only snapshot of ambient package metadata.
type Environment interface {
	Lookup(key string) (string, bool)
}

// OrEnv returns the last entry for key, falling back to envVar in env and then to "".
func (l Entries) OrEnv(key, envVar string, env Environment) string {
	if e, ok := l.Lookup(key); ok {
		return e.Value.AsString()
	}

	if env != nil {
		if v, ok := env.Lookup(envVar); ok {
			return v
		}
	}

	return ""
}
