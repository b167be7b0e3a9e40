package plan

import (
	"errors"
	"strings"

	"argspec-generator/internal/common"
)

// ErrorKind classifies compile failures.
type ErrorKind int

const (
	KindAttributeParse ErrorKind = iota + 1
	KindUnsupportedType
	KindMissingParserFunction
	KindDuplicateArgument
	KindMultipleSubcommands
	KindCyclicSchema
)

// Sentinels for errors.Is matching by kind.
var (
	ErrAttributeParse        = errors.New("attribute parse error")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrMissingParserFunction = errors.New("missing parser function")
	ErrDuplicateArgument     = errors.New("duplicate argument")
	ErrMultipleSubcommands   = errors.New("multiple subcommands")
	ErrCyclicSchema          = errors.New("cyclic schema")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAttributeParse:
		return ErrAttributeParse
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindMissingParserFunction:
		return ErrMissingParserFunction
	case KindDuplicateArgument:
		return ErrDuplicateArgument
	case KindMultipleSubcommands:
		return ErrMultipleSubcommands
	case KindCyclicSchema:
		return ErrCyclicSchema
	default:
		return nil
	}
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}

	return common.UnknownStr
}

// CompileError is the single failure of a compilation.
type CompileError struct {
	Kind   ErrorKind
	Item   string
	Member string
	Pos    common.Pos
	Msg    string
	Err    error
}

func compileErr(kind ErrorKind, msg string) *CompileError {
	return &CompileError{Kind: kind, Msg: msg}
}

// Error formats the error as "pos: item.member: kind: msg". The cause is
// printed only when there is no message.
func (e *CompileError) Error() string {
	var b strings.Builder

	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}

	if e.Item != "" {
		b.WriteString(e.Item)

		if e.Member != "" {
			b.WriteString(".")
			b.WriteString(e.Member)
		}

		b.WriteString(": ")
	}

	b.WriteString(e.Kind.String())

	switch {
	case e.Msg != "":
		b.WriteString(": ")
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel.
func (e *CompileError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// locate fills in the location of a CompileError that has none yet.
// Other errors are returned unchanged.
func locate(err error, item, member string, pos common.Pos) error {
	var ce *CompileError
	if !errors.As(err, &ce) {
		return err
	}

	if ce.Item == "" {
		ce.Item = item
		ce.Member = member
	}

	if !ce.Pos.IsValid() {
		ce.Pos = pos
	}

	return err
}
