package argbuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Call is one recorded setter call.
type Call struct {
	Method string
	Args   []any
}

// String renders the call as Method(arg, ...). Validators render as "fn".
func (c Call) String() string {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		parts = append(parts, formatArg(a))
	}

	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

func formatArg(a any) string {
	switch v := a.(type) {
	case string:
		return strconv.Quote(v)
	case func(string) error, func([]byte) error:
		return "fn"
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}

		return "[" + strings.Join(quoted, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// Recorder is a Factory whose commands and arguments record every call.
type Recorder struct{}

var (
	_ Factory = Recorder{}
	_ Command = (*RecordedCommand)(nil)
	_ Arg     = (*RecordedArg)(nil)
)

// NewCommand implements Factory.
func (Recorder) NewCommand(name string) Command {
	return &RecordedCommand{Name: name}
}

// NewArg implements Factory.
func (Recorder) NewArg(name string) Arg {
	return &RecordedArg{Name: name}
}

// RecordedCommand is a Command that records its calls.
type RecordedCommand struct {
	Name        string
	Calls       []Call
	Args        []*RecordedArg
	Subcommands []*RecordedCommand
}

func (c *RecordedCommand) record(method string, args ...any) {
	c.Calls = append(c.Calls, Call{Method: method, Args: args})
}

func (c *RecordedCommand) Version(v string) { c.record("Version", v) }
func (c *RecordedCommand) Author(a string) { c.record("Author", a) }
func (c *RecordedCommand) About(a string) { c.record("About", a) }
func (c *RecordedCommand) LongAbout(a string) { c.record("LongAbout", a) }
func (c *RecordedCommand) Aliases(n ...string) { c.record("Aliases", n) }
func (c *RecordedCommand) Hidden(b bool) { c.record("Hidden", b) }
func (c *RecordedCommand) SubcommandRequired(b bool) { c.record("SubcommandRequired", b) }
func (c *RecordedCommand) Setting(key string, value any) { c.record("Setting", key, value) }

// Arg attaches a recorded argument. Other Arg implementations are ignored.
func (c *RecordedCommand) Arg(a Arg) {
	if ra, ok := a.(*RecordedArg); ok {
		c.Args = append(c.Args, ra)
	}
}

// Subcommand attaches a recorded command. Other implementations are ignored.
func (c *RecordedCommand) Subcommand(sub Command) {
	if rc, ok := sub.(*RecordedCommand); ok {
		c.Subcommands = append(c.Subcommands, rc)
	}
}

// FindArg returns the attached argument with the given name, or nil.
func (c *RecordedCommand) FindArg(name string) *RecordedArg {
	for _, a := range c.Args {
		if a.Name == name {
			return a
		}
	}

	return nil
}

// FindSubcommand returns the attached subcommand with the given name, or nil.
func (c *RecordedCommand) FindSubcommand(name string) *RecordedCommand {
	for _, s := range c.Subcommands {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// RecordedArg is an Arg that records its calls. Validators are kept so
// tests can invoke them.
type RecordedArg struct {
	Name       string
	Calls      []Call
	Validate   func(string) error
	ValidateOS func([]byte) error
}

func (a *RecordedArg) record(method string, args ...any) {
	a.Calls = append(a.Calls, Call{Method: method, Args: args})
}

func (a *RecordedArg) Short(s string) { a.record("Short", s) }
func (a *RecordedArg) Long(l string) { a.record("Long", l) }
func (a *RecordedArg) Help(h string) { a.record("Help", h) }
func (a *RecordedArg) LongHelp(h string) { a.record("LongHelp", h) }
func (a *RecordedArg) TakesValue(b bool) { a.record("TakesValue", b) }
func (a *RecordedArg) Multiple(b bool) { a.record("Multiple", b) }
func (a *RecordedArg) Required(b bool) { a.record("Required", b) }
func (a *RecordedArg) DefaultValue(v string) { a.record("DefaultValue", v) }
func (a *RecordedArg) PossibleValues(v ...string) { a.record("PossibleValues", v) }
func (a *RecordedArg) Aliases(n ...string) { a.record("Aliases", n) }
func (a *RecordedArg) ValueName(n string) { a.record("ValueName", n) }
func (a *RecordedArg) Env(name string) { a.record("Env", name) }
func (a *RecordedArg) Hidden(b bool) { a.record("Hidden", b) }
func (a *RecordedArg) Global(b bool) { a.record("Global", b) }
func (a *RecordedArg) Setting(key string, v any) { a.record("Setting", key, v) }

func (a *RecordedArg) Validator(fn func(string) error) {
	a.Validate = fn
	a.record("Validator", fn)
}

func (a *RecordedArg) ValidatorOS(fn func([]byte) error) {
	a.ValidateOS = fn
	a.record("ValidatorOS", fn)
}

// Trace returns the calls as strings, in order.
func (a *RecordedArg) Trace() []string {
	return trace(a.Calls)
}

// Trace returns the calls as strings, in order.
func (c *RecordedCommand) Trace() []string {
	return trace(c.Calls)
}

func trace(calls []Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}

	return out
}
