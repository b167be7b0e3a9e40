package gen

import (
	"fmt"
	"strings"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/plan"
)

//go:generate go tool stringer -type=Op,ValueKind -linecomment -output=invocation_string.go

// Op is the kind of a builder invocation. String gives its serialized name.
type Op int

const (
	// OpCommand - construct the command of Scope.
	OpCommand Op = iota // command
	// OpArg - construct argument Arg inside Scope.
	OpArg // arg
	// OpSet - call Method on the command of Scope, or on Arg when set.
	OpSet // set
	// OpAddArg - attach argument Arg to the command of Scope.
	OpAddArg // add_arg
	// OpSubcommand - attach the command of scope Value.Str to Scope.
	OpSubcommand // subcommand
)

func (o Op) valid() bool { return o >= OpCommand && o <= OpSubcommand }

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, fmt.Errorf("invalid op %d", int(o))
	}

	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	for op := OpCommand; op <= OpSubcommand; op++ {
		if op.String() == string(text) {
			*o = op
			return nil
		}
	}

	return fmt.Errorf("unknown op %q", text)
}

// ValueKind tells how a setter argument is rendered.
type ValueKind int

const (
	// ValueString - quoted string.
	ValueString ValueKind = iota // string
	// ValueBool - boolean literal.
	ValueBool // bool
	// ValueList - variadic strings.
	ValueList // list
	// ValueRaw - Go expression inserted verbatim.
	ValueRaw // raw
	// ValueValidator - validator closure.
	ValueValidator // validator
)

func (k ValueKind) valid() bool { return k >= ValueString && k <= ValueValidator }

// MarshalText implements encoding.TextMarshaler.
func (k ValueKind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("invalid value kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ValueKind) UnmarshalText(text []byte) error {
	for kind := ValueString; kind <= ValueValidator; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown value kind %q", text)
}

// Value is a setter argument.
type Value struct {
	Kind      ValueKind       `json:"kind" yaml:"kind"`
	Str       string          `json:"str,omitempty" yaml:"str,omitempty"`
	Bool      bool            `json:"bool,omitempty" yaml:"bool,omitempty"`
	List      []string        `json:"list,omitempty" yaml:"list,omitempty"`
	Validator *plan.Validator `json:"validator,omitempty" yaml:"validator,omitempty"`
}

// Invocation is one call against the parser-builder contract.
type Invocation struct {
	Op Op `json:"op" yaml:"op"`
	// Scope is the command path below the root, "/" separated. The root is "".
	Scope string `json:"scope" yaml:"scope"`
	// Arg names the argument of OpArg, OpAddArg and argument setters.
	Arg string `json:"arg,omitempty" yaml:"arg,omitempty"`
	// Method is the contract method of OpSet.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Key is the attribute key of a generic Setting call.
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
	Value Value  `json:"value" yaml:"value"`
}

// String renders the invocation as a single line, for logs and tests.
func (in Invocation) String() string {
	target := "[" + in.Scope + "]"
	if in.Arg != "" {
		target += "." + in.Arg
	}

	switch in.Op {
	case OpSet:
		method := in.Method
		if in.Key != "" {
			method += ":" + in.Key
		}

		return fmt.Sprintf("set %s %s=%s", target, method, in.Value.display())
	case OpSubcommand:
		return fmt.Sprintf("subcommand %s <- [%s]", target, in.Value.Str)
	case OpAddArg:
		return "add_arg " + target
	default:
		return fmt.Sprintf("%s %s %s", in.Op, target, in.Value.display())
	}
}

func (v Value) display() string {
	switch v.Kind {
	case ValueBool:
		return fmt.Sprint(v.Bool)
	case ValueList:
		return "[" + strings.Join(v.List, ",") + "]"
	case ValueRaw:
		return "`" + v.Str + "`"
	case ValueValidator:
		if v.Validator == nil {
			return "validator()"
		}

		return "validator(" + v.Validator.Call + ")"
	default:
		return fmt.Sprintf("%q", v.Str)
	}
}

func stringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

func boolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// Emit lowers spec into builder invocations: per command its construction,
// metadata and settings, then each argument (construction, derived flags,
// validator, settings, attach), then each subcommand recursively followed by
// its registration.
func Emit(spec *plan.Spec) ([]Invocation, error) {
	e := &emitter{}
	if err := e.command("", spec.Root); err != nil {
		return nil, err
	}

	return e.out, nil
}

type emitter struct {
	out []Invocation
}

func (e *emitter) add(in Invocation) {
	e.out = append(e.out, in)
}

func (e *emitter) command(scope string, cmd *plan.Command) error {
	e.add(Invocation{Op: OpCommand, Scope: scope, Value: stringValue(cmd.Name)})

	meta := []struct{ method, value string }{
		{"Version", cmd.Version},
		{"Author", cmd.Author},
		{"About", cmd.About},
	}

	for _, m := range meta {
		if m.value != "" {
			e.add(Invocation{Op: OpSet, Scope: scope, Method: m.method, Value: stringValue(m.value)})
		}
	}

	for _, s := range cmd.Settings {
		in, err := setter(commandMethods, s)
		if err != nil {
			return fmt.Errorf("command %q: %w", cmd.Name, err)
		}

		in.Scope = scope
		e.add(in)
	}

	if cmd.SubcommandRequired() {
		e.add(Invocation{Op: OpSet, Scope: scope, Method: "SubcommandRequired", Value: boolValue(true)})
	}

	for _, a := range cmd.Args {
		if err := e.arg(scope, a); err != nil {
			return fmt.Errorf("command %q: %w", cmd.Name, err)
		}
	}

	for _, sub := range cmd.Subcommands {
		child := childScope(scope, sub.Name)

		if err := e.command(child, sub); err != nil {
			return err
		}

		e.add(Invocation{Op: OpSubcommand, Scope: scope, Value: stringValue(child)})
	}

	return nil
}

func childScope(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name
}

func (e *emitter) arg(scope string, a *plan.Arg) error {
	set := func(method string, v Value) {
		e.add(Invocation{Op: OpSet, Scope: scope, Arg: a.Name, Method: method, Value: v})
	}

	e.add(Invocation{Op: OpArg, Scope: scope, Arg: a.Name, Value: stringValue(a.Name)})

	set("TakesValue", boolValue(a.TakesValue()))
	set("Multiple", boolValue(a.Multiple()))

	if a.Cardinality == plan.CardinalityRequired {
		set("Required", boolValue(a.Required()))
	}

	if v := a.Parser.Validator; v != nil {
		method := "Validator"
		if v.OS {
			method = "ValidatorOS"
		}

		set(method, Value{Kind: ValueValidator, Validator: v})
	}

	for _, s := range a.Settings {
		in, err := setter(argMethods, s)
		if err != nil {
			return fmt.Errorf("argument %q: %w", a.Name, err)
		}

		in.Scope, in.Arg = scope, a.Name
		e.add(in)
	}

	e.add(Invocation{Op: OpAddArg, Scope: scope, Arg: a.Name})

	return nil
}

// setter maps one attribute to a contract method, or to the generic
// Setting call when the contract has none.
func setter(methods map[string]method, e attr.Entry) (Invocation, error) {
	key, raw := strings.CutSuffix(e.Key, "_raw")

	m, known := methods[key]
	if !known {
		m = method{Name: "Setting"}
	}

	in := Invocation{Op: OpSet, Method: m.Name}
	if !known {
		in.Key = key
	}

	if raw {
		in.Value = Value{Kind: ValueRaw, Str: e.Value.AsString()}
		return in, nil
	}

	switch {
	case known && m.Param == paramBool:
		b, err := e.Value.AsBool()
		if err != nil {
			return Invocation{}, fmt.Errorf("%s: %w", e.Key, err)
		}

		in.Value = boolValue(b)
	case known && m.Param == paramList:
		in.Value = Value{Kind: ValueList, List: e.Value.AsList(",")}
	case known:
		in.Value = stringValue(e.Value.AsString())
	default:
		in.Value = genericValue(e.Value)
	}

	return in, nil
}

func genericValue(l attr.Literal) Value {
	switch l.Kind {
	case attr.KindBool:
		return boolValue(l.Text == "true")
	case attr.KindList:
		return Value{Kind: ValueList, List: l.Items}
	default:
		return stringValue(l.AsString())
	}
}
