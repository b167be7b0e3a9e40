package common

import "fmt"

// Pos is a source location inside a schema document or Go file.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String formats the position as file:line:column, omitting unknown parts.
func (p Pos) String() string {
	switch {
	case !p.IsValid() && p.File == "":
		return "-"
	case !p.IsValid():
		return p.File
	case p.Column > 0:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
}

// Offset returns the position shifted by n columns on the same line.
func (p Pos) Offset(n int) Pos {
	if !p.IsValid() {
		return p
	}

	p.Column += n

	return p
}
