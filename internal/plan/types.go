package plan

import (
	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
	"argspec-generator/internal/diagnostic"
	"argspec-generator/internal/schema"
)

// Spec is the final output of the compilation pipeline.
// It contains everything needed for code generation.
type Spec struct {
	// Root is the top-level command.
	Root *Command
	// Imports maps package qualifiers used by types to import paths.
	Imports map[string]string
	// Diagnostics contains warnings collected during compilation.
	Diagnostics diagnostic.Diagnostics
}

// Command is one resolved command: the root application or a subcommand.
type Command struct {
	// Name is the command identity passed to the builder.
	Name string
	// Item names the schema item the command was built from.
	Item string
	// Variant is the command-set member this subcommand comes from.
	Variant string
	// Version, Author and About are the metadata setters. Empty means unset.
	Version string
	Author  string
	About   string
	// Settings are the remaining item-level attributes in resolved order.
	Settings attr.Entries
	// Args are the arguments in declaration order, flattened ones included.
	Args []*Arg
	// Link describes the subcommand carrier, if any.
	Link *SubcommandLink
	// Subcommands are the nested commands in variant order.
	Subcommands []*Command
	// Pos locates the declaration.
	Pos common.Pos
}

// SubcommandRequired reports whether omitting a subcommand is a runtime error.
func (c *Command) SubcommandRequired() bool {
	return c.Link != nil && !c.Link.Flatten && !c.Link.Optional
}

// Arg looks up an argument by name.
func (c *Command) Arg(name string) *Arg {
	for _, a := range c.Args {
		if a.Name == name {
			return a
		}
	}

	return nil
}

// Subcommand looks up a direct subcommand by name.
func (c *Command) Subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}

	return nil
}

// Walk visits c and every nested command depth-first, parents first.
// The path holds the command names from the root down to the visited one.
func (c *Command) Walk(fn func(path []string, cmd *Command)) {
	c.walk(nil, fn)
}

func (c *Command) walk(parent []string, fn func([]string, *Command)) {
	path := append(append([]string(nil), parent...), c.Name)
	fn(path, c)

	for _, sub := range c.Subcommands {
		sub.walk(path, fn)
	}
}

// SubcommandLink is attached to a command whose item has a subcommand carrier.
type SubcommandLink struct {
	// Carrier is the member that hosts the subcommands.
	Carrier string
	// Target is the command-set item providing the subcommands.
	Target string
	// Optional leaves the slot unset when no subcommand is given.
	Optional bool
	// Flatten merges the target's arguments into the parent.
	Flatten bool
}

// Arg is one resolved argument.
type Arg struct {
	// Name is the argument identity.
	Name string
	// Member is the declared field name.
	Member string
	// Type is the declared type.
	Type schema.TypeSig
	// Base is the effective value type after unwrapping.
	Base schema.TypeSig
	// Cardinality governs how many values the argument consumes.
	Cardinality Cardinality
	// Parser is the value conversion.
	Parser ParserSpec
	// Settings are the member-level attributes in resolved order.
	Settings attr.Entries
	// Default is the default_value, when HasDefault is set.
	Default    string
	HasDefault bool
	// FlattenedFrom names the variant whose arguments were merged into the parent.
	FlattenedFrom string
	// Pos locates the declaration.
	Pos common.Pos
}

// TakesValue reports whether the argument consumes a value.
func (a *Arg) TakesValue() bool {
	return a.Cardinality != CardinalityFlag && a.Cardinality != CardinalityCounter
}

// Multiple reports whether the argument may occur several times.
func (a *Arg) Multiple() bool {
	return a.Cardinality == CardinalityCounter || a.Cardinality == CardinalityList
}

// Required reports whether omitting the argument is a runtime error.
// A default value suppresses it regardless of cardinality.
func (a *Arg) Required() bool {
	return a.Cardinality == CardinalityRequired && !a.HasDefault
}

// Cardinality is the arity classification of an argument.
type Cardinality int

const (
	// CardinalityFlag - presence only.
	CardinalityFlag Cardinality = iota
	// CardinalityCounter - value is the number of occurrences.
	CardinalityCounter
	// CardinalityOptional - zero or one value.
	CardinalityOptional
	// CardinalityList - any number of values.
	CardinalityList
	// CardinalityRequired - exactly one value.
	CardinalityRequired
)

// String returns a human-readable cardinality name.
func (c Cardinality) String() string {
	switch c {
	case CardinalityFlag:
		return "flag"
	case CardinalityCounter:
		return "counter"
	case CardinalityOptional:
		return "optional"
	case CardinalityList:
		return "list"
	case CardinalityRequired:
		return "required"
	default:
		return common.UnknownStr
	}
}

// ParserKind selects the value conversion contract.
type ParserKind int

const (
	// ParserNone - no conversion (flags and counters).
	ParserNone ParserKind = iota
	// ParserFromStr - func(string) T, never fails.
	ParserFromStr
	// ParserTryFromStr - func(string) (T, error).
	ParserTryFromStr
	// ParserFromOsStr - func([]byte) T, never fails.
	ParserFromOsStr
	// ParserTryFromOsStr - func([]byte) (T, error).
	ParserTryFromOsStr
)

// String returns the attribute spelling of the kind.
func (k ParserKind) String() string {
	switch k {
	case ParserNone:
		return "none"
	case ParserFromStr:
		return "from_str"
	case ParserTryFromStr:
		return "try_from_str"
	case ParserFromOsStr:
		return "from_os_str"
	case ParserTryFromOsStr:
		return "try_from_os_str"
	default:
		return common.UnknownStr
	}
}

// IsOS reports whether the kind converts raw bytes.
func (k ParserKind) IsOS() bool {
	return k == ParserFromOsStr || k == ParserTryFromOsStr
}

// IsTry reports whether the kind can fail.
func (k ParserKind) IsTry() bool {
	return k == ParserTryFromStr || k == ParserTryFromOsStr
}

// ParserSpec is the resolved value conversion of an argument.
type ParserSpec struct {
	// Kind is the conversion contract.
	Kind ParserKind
	// Func is the conversion function. Empty for kind defaults.
	Func string
	// Convert is the Go expression converting the input variable.
	Convert string
	// Validator is the pre-validation call, or nil.
	Validator *Validator
}

// ResultShape describes what a validator call returns.
type ResultShape int

const (
	// ResultValueError - (T, error).
	ResultValueError ResultShape = iota
	// ResultError - error only.
	ResultError
)

// Validator is a pre-validation call rendered into the builder.
// Call is a Go expression over the input variable Var.
type Validator struct {
	OS     bool        `json:"os,omitempty" yaml:"os,omitempty"`
	Var    string      `json:"var" yaml:"var"`
	Call   string      `json:"call" yaml:"call"`
	Result ResultShape `json:"result" yaml:"result"`
	// Imports are standard library packages the call needs.
	Imports []string `json:"imports,omitempty" yaml:"imports,omitempty"`
	// Qualifiers are package names used by the call that the caller's
	// import table must resolve.
	Qualifiers []string `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
}
