package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
)

const (
	directivePrefix = "//argspec:"

	directiveCommand  = "command"
	directiveCommands = "commands"
	directiveRoot     = "root"

	// TagKey is the struct tag holding field attributes.
	TagKey = "arg"
)

type directives struct {
	marked   bool
	commands bool
	root     bool
	attrs    []attr.Raw
}

// readDirectives scans the raw comment list, since CommentGroup.Text drops
// directive lines.
func readDirectives(fset *token.FileSet, cg *ast.CommentGroup) directives {
	var d directives
	if cg == nil {
		return d
	}

	for _, c := range cg.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		name, args, _ := strings.Cut(rest, " ")

		switch strings.TrimSpace(name) {
		case directiveCommand:
			d.marked = true
		case directiveCommands:
			d.marked, d.commands = true, true
		case directiveRoot:
			d.root = true
		default:
			continue
		}

		if args = strings.TrimSpace(args); args != "" {
			pos := position(fset, c.Slash)
			pos.Column += len(c.Text) - len(args)
			d.attrs = append(d.attrs, attr.Text(args, pos))
		}
	}

	return d
}

// docLines returns the comment text without directive lines.
func docLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}

	text := strings.TrimRight(cg.Text(), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

func position(fset *token.FileSet, p token.Pos) common.Pos {
	if !p.IsValid() {
		return common.Pos{}
	}

	pp := fset.Position(p)

	return common.Pos{File: pp.Filename, Line: pp.Line, Column: pp.Column}
}
