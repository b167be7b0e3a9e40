package schema

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"

	"argspec-generator/internal/common"
)

// Shape is the structural form of a type signature.
type Shape int

const (
	ShapeNone    Shape = iota // no type (unit variant)
	ShapeNamed                // ident, pkg.Ident, Generic[Args]
	ShapePointer              // *Elem
	ShapeSlice                // []Elem
	ShapeArray                // [N]Elem
	ShapeMap                  // map[Key]Value
	ShapeOther                // func, chan, interface, struct literal, ...
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeNamed:
		return "named"
	case ShapePointer:
		return "pointer"
	case ShapeSlice:
		return "slice"
	case ShapeArray:
		return "array"
	case ShapeMap:
		return "map"
	case ShapeOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeSig is an explicit structural type descriptor.
//
// Named types keep their generic arguments in Args. Pointers, slices and
// arrays keep their element as Args[0]; maps keep key and value.
type TypeSig struct {
	Shape Shape
	Pkg   string // package qualifier of a named type ("time")
	Name  string // identifier of a named type ("Duration")
	Args  []TypeSig
	Len   string // array length expression
	Text  string // source text for ShapeOther
}

// Named builds a named type. A qualified name ("time.Duration") is split.
func Named(name string, args ...TypeSig) TypeSig {
	pkg, ident := "", name
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkg, ident = name[:i], name[i+1:]
	}

	return TypeSig{Shape: ShapeNamed, Pkg: pkg, Name: ident, Args: args}
}

// PointerTo builds *elem.
func PointerTo(elem TypeSig) TypeSig {
	return TypeSig{Shape: ShapePointer, Args: []TypeSig{elem}}
}

// SliceOf builds []elem.
func SliceOf(elem TypeSig) TypeSig {
	return TypeSig{Shape: ShapeSlice, Args: []TypeSig{elem}}
}

// MapOf builds map[key]value.
func MapOf(key, value TypeSig) TypeSig {
	return TypeSig{Shape: ShapeMap, Args: []TypeSig{key, value}}
}

// IsZero reports whether no type is set.
func (t TypeSig) IsZero() bool {
	return t.Shape == ShapeNone
}

// QualifiedName returns pkg.Name for named types and "" otherwise.
func (t TypeSig) QualifiedName() string {
	if t.Shape != ShapeNamed {
		return ""
	}

	if t.Pkg == "" {
		return t.Name
	}

	return t.Pkg + "." + t.Name
}

// Elem returns the single type argument, if there is exactly one.
func (t TypeSig) Elem() (TypeSig, bool) {
	if len(t.Args) != 1 {
		return TypeSig{}, false
	}

	return t.Args[0], true
}

// String renders the signature in Go syntax.
func (t TypeSig) String() string {
	switch t.Shape {
	case ShapeNone:
		return ""
	case ShapeNamed:
		if len(t.Args) == 0 {
			return t.QualifiedName()
		}

		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}

		return t.QualifiedName() + "[" + strings.Join(args, ", ") + "]"
	case ShapePointer:
		return "*" + t.argString(0)
	case ShapeSlice:
		return "[]" + t.argString(0)
	case ShapeArray:
		return "[" + t.Len + "]" + t.argString(0)
	case ShapeMap:
		return "map[" + t.argString(0) + "]" + t.argString(1)
	default:
		return t.Text
	}
}

func (t TypeSig) argString(i int) string {
	if i < len(t.Args) {
		return t.Args[i].String()
	}

	return "?"
}

// ParseType parses a type signature written in Go syntax. Rust-style angle
// brackets are rewritten to Go generics first ("Vec<String>" -> "Vec[String]").
func ParseType(text string) (TypeSig, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TypeSig{}, nil
	}

	if strings.ContainsAny(text, "<>") {
		text = strings.NewReplacer("<", "[", ">", "]").Replace(text)
	}

	expr, err := parser.ParseExpr(text)
	if err != nil {
		return TypeSig{}, fmt.Errorf("invalid type %q: %w", text, err)
	}

	return fromExpr(expr)
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(text string) TypeSig {
	t, err := ParseType(text)
	if err != nil {
		panic(err)
	}

	return t
}

func fromExpr(expr ast.Expr) (TypeSig, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return TypeSig{Shape: ShapeNamed, Name: e.Name}, nil

	case *ast.SelectorExpr:
		pkg, ok := e.X.(*ast.Ident)
		if !ok {
			return TypeSig{}, fmt.Errorf("invalid qualified type %q", types.ExprString(e))
		}

		return TypeSig{Shape: ShapeNamed, Pkg: pkg.Name, Name: e.Sel.Name}, nil

	case *ast.ParenExpr:
		return fromExpr(e.X)

	case *ast.StarExpr:
		elem, err := fromExpr(e.X)
		if err != nil {
			return TypeSig{}, err
		}

		return PointerTo(elem), nil

	case *ast.ArrayType:
		elem, err := fromExpr(e.Elt)
		if err != nil {
			return TypeSig{}, err
		}

		if e.Len == nil {
			return SliceOf(elem), nil
		}

		return TypeSig{Shape: ShapeArray, Len: types.ExprString(e.Len), Args: []TypeSig{elem}}, nil

	case *ast.MapType:
		key, err := fromExpr(e.Key)
		if err != nil {
			return TypeSig{}, err
		}

		value, err := fromExpr(e.Value)
		if err != nil {
			return TypeSig{}, err
		}

		return MapOf(key, value), nil

	case *ast.IndexExpr:
		return genericFromExpr(e.X, []ast.Expr{e.Index})

	case *ast.IndexListExpr:
		return genericFromExpr(e.X, e.Indices)

	default:
		return TypeSig{Shape: ShapeOther, Text: types.ExprString(expr)}, nil
	}
}

func genericFromExpr(base ast.Expr, indices []ast.Expr) (TypeSig, error) {
	t, err := fromExpr(base)
	if err != nil {
		return TypeSig{}, err
	}

	if t.Shape != ShapeNamed || len(t.Args) > 0 {
		return TypeSig{}, fmt.Errorf("invalid generic type %q", types.ExprString(base))
	}

	for _, idx := range indices {
		arg, err := fromExpr(idx)
		if err != nil {
			return TypeSig{}, err
		}

		t.Args = append(t.Args, arg)
	}

	return t, nil
}
