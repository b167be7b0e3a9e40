package plan

import (
	"fmt"
	"strings"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/schema"
)

const (
	strVar = "s"
	osVar  = "b"
)

type builtinParser struct {
	call    string // format with the input variable
	imports []string
}

var strconvImport = []string{"strconv"}

// builtinParsers are the standard textual constructors of well-known types.
// Rust-style spellings are accepted for schema documents.
var builtinParsers = map[string]builtinParser{
	"bool":          {"strconv.ParseBool(%s)", strconvImport},
	"int":           {"strconv.Atoi(%s)", strconvImport},
	"isize":         {"strconv.Atoi(%s)", strconvImport},
	"int8":          {"strconv.ParseInt(%s, 10, 8)", strconvImport},
	"i8":            {"strconv.ParseInt(%s, 10, 8)", strconvImport},
	"int16":         {"strconv.ParseInt(%s, 10, 16)", strconvImport},
	"i16":           {"strconv.ParseInt(%s, 10, 16)", strconvImport},
	"int32":         {"strconv.ParseInt(%s, 10, 32)", strconvImport},
	"i32":           {"strconv.ParseInt(%s, 10, 32)", strconvImport},
	"int64":         {"strconv.ParseInt(%s, 10, 64)", strconvImport},
	"i64":           {"strconv.ParseInt(%s, 10, 64)", strconvImport},
	"uint":          {"strconv.ParseUint(%s, 10, 0)", strconvImport},
	"usize":         {"strconv.ParseUint(%s, 10, 0)", strconvImport},
	"uint8":         {"strconv.ParseUint(%s, 10, 8)", strconvImport},
	"byte":          {"strconv.ParseUint(%s, 10, 8)", strconvImport},
	"u8":            {"strconv.ParseUint(%s, 10, 8)", strconvImport},
	"uint16":        {"strconv.ParseUint(%s, 10, 16)", strconvImport},
	"u16":           {"strconv.ParseUint(%s, 10, 16)", strconvImport},
	"uint32":        {"strconv.ParseUint(%s, 10, 32)", strconvImport},
	"u32":           {"strconv.ParseUint(%s, 10, 32)", strconvImport},
	"uint64":        {"strconv.ParseUint(%s, 10, 64)", strconvImport},
	"u64":           {"strconv.ParseUint(%s, 10, 64)", strconvImport},
	"float32":       {"strconv.ParseFloat(%s, 32)", strconvImport},
	"f32":           {"strconv.ParseFloat(%s, 32)", strconvImport},
	"float64":       {"strconv.ParseFloat(%s, 64)", strconvImport},
	"f64":           {"strconv.ParseFloat(%s, 64)", strconvImport},
	"time.Duration": {"time.ParseDuration(%s)", []string{"time"}},
}

// stringTypes convert from text without failing.
var stringTypes = map[string]bool{"string": true, "String": true, "str": true}

// ResolveParser determines the value conversion of an argument from its
// classification and its parse directive, if any.
func ResolveParser(class Classification, directive *attr.Entry) (ParserSpec, error) {
	if directive == nil {
		if class.Cardinality == CardinalityFlag || class.Cardinality == CardinalityCounter {
			return ParserSpec{Kind: ParserNone}, nil
		}

		return defaultTryFromStr(class.Base)
	}

	kind, fn, err := parseDirective(*directive)
	if err != nil {
		return ParserSpec{}, err
	}

	switch kind {
	case ParserFromStr:
		if fn == "" {
			return ParserSpec{Kind: kind, Convert: conversion(class.Base, strVar)}, nil
		}

		return ParserSpec{Kind: kind, Func: fn, Convert: call(fn, strVar)}, nil

	case ParserTryFromStr:
		if fn == "" {
			return defaultTryFromStr(class.Base)
		}

		return customTry(kind, fn, strVar), nil

	case ParserFromOsStr:
		if fn == "" {
			return ParserSpec{Kind: kind, Convert: conversion(class.Base, osVar)}, nil
		}

		return ParserSpec{Kind: kind, Func: fn, Convert: call(fn, osVar)}, nil

	default:
		if fn == "" {
			return ParserSpec{}, &CompileError{
				Kind: KindMissingParserFunction,
				Pos:  directive.Pos,
				Msg:  "parse(try_from_os_str) requires a function",
			}
		}

		return customTry(kind, fn, osVar), nil
	}
}

// parseDirective reads parse(kind) or parse(kind=func). Document sources
// may also spell it as the string "kind" or "kind=func".
func parseDirective(e attr.Entry) (ParserKind, string, error) {
	var kindText, fn string

	switch e.Value.Kind {
	case attr.KindGroup:
		if len(e.Value.Group) != 1 {
			return 0, "", directiveErr(e, "parse takes exactly one kind")
		}

		inner := e.Value.Group[0]
		kindText = inner.Key

		if inner.Value.Kind != attr.KindBool {
			fn = strings.TrimSpace(inner.Value.AsString())
		} else if inner.Value.Text != "true" {
			return 0, "", directiveErr(e, "parse kind cannot be false")
		}

	case attr.KindString:
		kindText, fn, _ = strings.Cut(e.Value.Text, "=")
		kindText, fn = strings.TrimSpace(kindText), strings.TrimSpace(fn)

	default:
		return 0, "", directiveErr(e, "parse needs a kind, e.g. parse(try_from_str=parseHex)")
	}

	kind, ok := parserKinds[kindText]
	if !ok {
		return 0, "", directiveErr(e, fmt.Sprintf("unknown parser kind %q", kindText))
	}

	return kind, fn, nil
}

var parserKinds = map[string]ParserKind{
	ParserFromStr.String():      ParserFromStr,
	ParserTryFromStr.String():   ParserTryFromStr,
	ParserFromOsStr.String():    ParserFromOsStr,
	ParserTryFromOsStr.String(): ParserTryFromOsStr,
}

func directiveErr(e attr.Entry, msg string) *CompileError {
	return &CompileError{Kind: KindAttributeParse, Pos: e.Pos, Msg: msg}
}

// defaultTryFromStr builds the standard textual constructor for base. The
// validator stringifies any failure by returning the constructor's error.
func defaultTryFromStr(base schema.TypeSig) (ParserSpec, error) {
	if base.Shape != schema.ShapeNamed || len(base.Args) > 0 {
		return ParserSpec{}, unsupported(base, "no default parser; add parse(...) with a function")
	}

	name := base.QualifiedName()

	if stringTypes[name] {
		return ParserSpec{Kind: ParserTryFromStr, Convert: strVar}, nil
	}

	if b, ok := builtinParsers[name]; ok {
		expr := fmt.Sprintf(b.call, strVar)

		return ParserSpec{
			Kind:    ParserTryFromStr,
			Convert: expr,
			Validator: &Validator{
				Var:     strVar,
				Call:    expr,
				Result:  ResultValueError,
				Imports: b.imports,
			},
		}, nil
	}

	expr := fmt.Sprintf("new(%s).UnmarshalText([]byte(%s))", name, strVar)

	return ParserSpec{
		Kind:    ParserTryFromStr,
		Convert: expr,
		Validator: &Validator{
			Var:        strVar,
			Call:       expr,
			Result:     ResultError,
			Qualifiers: qualifiers(base.Pkg),
		},
	}, nil
}

// customTry re-invokes fn as a validator before the runtime's own call,
// so fn runs twice and must not have side effects.
func customTry(kind ParserKind, fn, v string) ParserSpec {
	expr := call(fn, v)

	return ParserSpec{
		Kind:    kind,
		Func:    fn,
		Convert: expr,
		Validator: &Validator{
			OS:         kind.IsOS(),
			Var:        v,
			Call:       expr,
			Result:     ResultValueError,
			Qualifiers: qualifiers(funcQualifier(fn)),
		},
	}
}

func call(fn, v string) string {
	return fn + "(" + v + ")"
}

func conversion(base schema.TypeSig, v string) string {
	return "(" + base.String() + ")(" + v + ")"
}

func funcQualifier(fn string) string {
	if i := strings.LastIndex(fn, "."); i > 0 {
		return fn[:i]
	}

	return ""
}

func qualifiers(pkg string) []string {
	if pkg == "" {
		return nil
	}

	return []string{pkg}
}
