package plan

import (
	"fmt"

	"argspec-generator/internal/schema"
)

// Classification is the arity of a declared type plus its value type.
type Classification struct {
	Cardinality Cardinality
	// Base is the wrapped type for Optional and List, the type itself otherwise.
	Base schema.TypeSig
}

// Classify maps a declared type to its Cardinality. Dispatch order:
// bool → Flag, counter → Counter, optional wrapper → Optional, sequence
// wrapper → List, anything else → Required. A custom parser suppresses the
// first two rules.
func (c Config) Classify(sig schema.TypeSig, customParser bool) (Classification, error) {
	switch sig.Shape {
	case schema.ShapeNone:
		return Classification{}, unsupported(sig, "missing type")

	case schema.ShapePointer:
		return Classification{Cardinality: CardinalityOptional, Base: sig.Args[0]}, nil

	case schema.ShapeSlice:
		return Classification{Cardinality: CardinalityList, Base: sig.Args[0]}, nil

	case schema.ShapeNamed:
		return c.classifyNamed(sig, customParser)

	default:
		return Classification{}, unsupported(sig, sig.Shape.String()+" types cannot be arguments")
	}
}

func (c Config) classifyNamed(sig schema.TypeSig, customParser bool) (Classification, error) {
	name := sig.QualifiedName()

	if c.isWrapper(name) {
		elem, ok := sig.Elem()
		if !ok {
			return Classification{}, unsupported(sig, fmt.Sprintf("%s needs exactly one type parameter", name))
		}

		if c.isOptional(name) {
			return Classification{Cardinality: CardinalityOptional, Base: elem}, nil
		}

		return Classification{Cardinality: CardinalityList, Base: elem}, nil
	}

	if len(sig.Args) > 1 {
		return Classification{}, unsupported(sig, "multi-parameter generic types are ambiguous")
	}

	if !customParser && len(sig.Args) == 0 {
		switch {
		case c.isBool(name):
			return Classification{Cardinality: CardinalityFlag, Base: sig}, nil
		case c.isCounter(name):
			return Classification{Cardinality: CardinalityCounter, Base: sig}, nil
		}
	}

	return Classification{Cardinality: CardinalityRequired, Base: sig}, nil
}

func unsupported(sig schema.TypeSig, reason string) *CompileError {
	if sig.IsZero() {
		return compileErr(KindUnsupportedType, reason)
	}

	return compileErr(KindUnsupportedType, fmt.Sprintf("%s: %s", sig, reason))
}
