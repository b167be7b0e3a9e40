package attr

import (
	"fmt"
	"strings"
	"unicode"

	"argspec-generator/internal/common"
)

// SyntaxError reports malformed attribute text.
type SyntaxError struct {
	Pos  common.Pos
	Text string
	Msg  string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: malformed attribute %q: %s", e.Pos, e.Text, e.Msg)
}

// Parse parses attribute text written in the tag grammar:
//
//	entry {"," entry}
//	entry = key ["=" value] | key "(" entry {"," entry} ")"
//
// Values are bare words or quoted strings ('...' or "...") with backslash
// escapes. A bare key is the boolean literal true. pos locates the first
// character of text; entry positions are offsets from it.
func Parse(text string, pos common.Pos) (Entries, error) {
	p := &tagParser{src: []rune(text), text: text, pos: pos}

	entries, err := p.entries(false)
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.peek())
	}

	return entries, nil
}

type tagParser struct {
	src  []rune
	off  int
	text string
	pos  common.Pos
}

func (p *tagParser) eof() bool {
	return p.off >= len(p.src)
}

func (p *tagParser) peek() rune {
	if p.eof() {
		return 0
	}

	return p.src[p.off]
}

func (p *tagParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.off++
	}
}

func (p *tagParser) errorf(format string, args ...any) error {
	return &SyntaxError{
		Pos:  p.pos.Offset(p.off),
		Text: p.text,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// entries parses a comma separated list. In a group it stops before ')'.
func (p *tagParser) entries(group bool) (Entries, error) {
	var out Entries

	for {
		p.skipSpace()

		if p.eof() || (group && p.peek() == ')') {
			if len(out) > 0 {
				return nil, p.errorf("trailing comma")
			}

			return out, nil
		}

		e, err := p.entry()
		if err != nil {
			return nil, err
		}

		out = append(out, e)

		p.skipSpace()

		if p.eof() || (group && p.peek() == ')') {
			return out, nil
		}

		if p.peek() != ',' {
			return nil, p.errorf("expected ',' after %q, got %q", e.Key, p.peek())
		}

		p.off++
	}
}

func (p *tagParser) entry() (Entry, error) {
	start := p.off
	key := p.key()

	if key == "" {
		return Entry{}, p.errorf("expected attribute name, got %q", p.peek())
	}

	e := Entry{Key: key, Pos: p.pos.Offset(start)}

	p.skipSpace()

	switch p.peek() {
	case '=':
		p.off++
		p.skipSpace()

		v, err := p.value()
		if err != nil {
			return Entry{}, err
		}

		e.Value = String(v)

	case '(':
		p.off++

		group, err := p.entries(true)
		if err != nil {
			return Entry{}, err
		}

		if p.peek() != ')' {
			return Entry{}, p.errorf("missing ')' for %q", key)
		}

		p.off++
		e.Value = Group(group...)

	default:
		e.Value = Bool(true)
	}

	return e, nil
}

func (p *tagParser) key() string {
	start := p.off

	for !p.eof() {
		r := p.peek()
		if r == '_' || r == '-' || unicode.IsLetter(r) || (p.off > start && unicode.IsDigit(r)) {
			p.off++
			continue
		}

		break
	}

	return string(p.src[start:p.off])
}

func (p *tagParser) value() (string, error) {
	if p.eof() {
		return "", p.errorf("missing value")
	}

	if q := p.peek(); q == '\'' || q == '"' {
		return p.quoted(q)
	}

	start := p.off
	for !p.eof() && !strings.ContainsRune(",()", p.peek()) {
		p.off++
	}

	v := strings.TrimSpace(string(p.src[start:p.off]))
	if v == "" {
		return "", p.errorf("missing value")
	}

	if strings.ContainsAny(v, `'"`) {
		return "", p.errorf("unexpected quote in %q", v)
	}

	return v, nil
}

func (p *tagParser) quoted(q rune) (string, error) {
	open := p.off
	p.off++

	var sb strings.Builder

	for !p.eof() {
		r := p.peek()
		p.off++

		switch r {
		case q:
			return sb.String(), nil
		case '\\':
			if p.eof() {
				p.off = open
				return "", p.errorf("unterminated string")
			}

			sb.WriteRune(unescape(p.peek()))
			p.off++
		default:
			sb.WriteRune(r)
		}
	}

	p.off = open

	return "", p.errorf("unterminated string")
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return r
	}
}
