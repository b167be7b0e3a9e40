package argbuilder

// Factory constructs commands and arguments.
type Factory interface {
	NewCommand(name string) Command
	NewArg(name string) Arg
}

// Command is an application or subcommand under construction.
type Command interface {
	Version(v string)
	Author(a string)
	About(a string)
	LongAbout(a string)
	Aliases(names ...string)
	Hidden(b bool)
	SubcommandRequired(b bool)
	// Setting applies a setter the contract has no method for.
	Setting(key string, value any)
	Arg(a Arg)
	Subcommand(c Command)
}

// Arg is an argument under construction.
type Arg interface {
	Short(s string)
	Long(l string)
	Help(h string)
	LongHelp(h string)
	TakesValue(b bool)
	Multiple(b bool)
	Required(b bool)
	DefaultValue(v string)
	PossibleValues(values ...string)
	Aliases(names ...string)
	ValueName(n string)
	Env(name string)
	Hidden(b bool)
	Global(b bool)
	Validator(fn func(string) error)
	ValidatorOS(fn func([]byte) error)
	// Setting applies a setter the contract has no method for.
	Setting(key string, value any)
}
