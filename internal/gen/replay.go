package gen

import (
	"errors"
	"fmt"

	"argspec-generator/argbuilder"
	"argspec-generator/internal/plan"
)

// RawExpr is a raw attribute expression passed through Setting during replay.
// Replay cannot evaluate Go expressions.
type RawExpr string

// ValidatorFunc supplies the closure for a validator during replay.
// Exactly one of the results is used, depending on v.OS.
type ValidatorFunc func(v *plan.Validator) (func(string) error, func([]byte) error)

// AcceptAll is the ValidatorFunc used when Replay gets nil.
func AcceptAll(*plan.Validator) (func(string) error, func([]byte) error) {
	return func(string) error { return nil }, func([]byte) error { return nil }
}

// Replay executes invocations against f and returns the root command.
// It is the interpreted counterpart of the Go rendering.
func Replay(invocations []Invocation, f argbuilder.Factory, validators ValidatorFunc) (argbuilder.Command, error) {
	if validators == nil {
		validators = AcceptAll
	}

	var (
		commands = map[string]argbuilder.Command{}
		args     = map[string]argbuilder.Arg{}
	)

	argKey := func(in Invocation) string { return in.Scope + "\x00" + in.Arg }

	for i, in := range invocations {
		switch in.Op {
		case OpCommand:
			commands[in.Scope] = f.NewCommand(in.Value.Str)
			continue
		case OpArg:
			if _, ok := commands[in.Scope]; !ok {
				return nil, fmt.Errorf("invocation %d: argument %q before its command", i, in.Arg)
			}

			args[argKey(in)] = f.NewArg(in.Value.Str)

			continue
		}

		cmd, ok := commands[in.Scope]
		if !ok {
			return nil, fmt.Errorf("invocation %d: unknown command scope %q", i, in.Scope)
		}

		switch in.Op {
		case OpAddArg:
			a, ok := args[argKey(in)]
			if !ok {
				return nil, fmt.Errorf("invocation %d: unknown argument %q", i, in.Arg)
			}

			cmd.Arg(a)
			delete(args, argKey(in))
		case OpSubcommand:
			sub, ok := commands[in.Value.Str]
			if !ok {
				return nil, fmt.Errorf("invocation %d: unknown subcommand scope %q", i, in.Value.Str)
			}

			cmd.Subcommand(sub)
		case OpSet:
			var err error
			if in.Arg != "" {
				a, ok := args[argKey(in)]
				if !ok {
					return nil, fmt.Errorf("invocation %d: unknown argument %q", i, in.Arg)
				}

				err = setArg(a, in, validators)
			} else {
				err = setCommand(cmd, in)
			}

			if err != nil {
				return nil, fmt.Errorf("invocation %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("invocation %d: unknown op %d", i, int(in.Op))
		}
	}

	root, ok := commands[""]
	if !ok {
		return nil, errors.New("no root command constructed")
	}

	return root, nil
}

// replayValue converts a value for the generic Setting call.
func replayValue(v Value) any {
	switch v.Kind {
	case ValueBool:
		return v.Bool
	case ValueList:
		return v.List
	case ValueRaw:
		return RawExpr(v.Str)
	default:
		return v.Str
	}
}

func setCommand(c argbuilder.Command, in Invocation) error {
	v := in.Value
	if in.Method == "Setting" {
		c.Setting(in.Key, replayValue(v))
		return nil
	}

	if v.Kind == ValueRaw {
		c.Setting(in.Method, RawExpr(v.Str))
		return nil
	}

	switch in.Method {
	case "Version":
		c.Version(v.Str)
	case "Author":
		c.Author(v.Str)
	case "About":
		c.About(v.Str)
	case "LongAbout":
		c.LongAbout(v.Str)
	case "Aliases":
		c.Aliases(v.List...)
	case "Hidden":
		c.Hidden(v.Bool)
	case "SubcommandRequired":
		c.SubcommandRequired(v.Bool)
	default:
		return fmt.Errorf("command has no method %q", in.Method)
	}

	return nil
}

func setArg(a argbuilder.Arg, in Invocation, validators ValidatorFunc) error {
	v := in.Value
	if in.Method == "Setting" {
		a.Setting(in.Key, replayValue(v))
		return nil
	}

	if v.Kind == ValueRaw {
		a.Setting(in.Method, RawExpr(v.Str))
		return nil
	}

	switch in.Method {
	case "Short":
		a.Short(v.Str)
	case "Long":
		a.Long(v.Str)
	case "Help":
		a.Help(v.Str)
	case "LongHelp":
		a.LongHelp(v.Str)
	case "TakesValue":
		a.TakesValue(v.Bool)
	case "Multiple":
		a.Multiple(v.Bool)
	case "Required":
		a.Required(v.Bool)
	case "DefaultValue":
		a.DefaultValue(v.Str)
	case "PossibleValues":
		a.PossibleValues(v.List...)
	case "Aliases":
		a.Aliases(v.List...)
	case "ValueName":
		a.ValueName(v.Str)
	case "Env":
		a.Env(v.Str)
	case "Hidden":
		a.Hidden(v.Bool)
	case "Global":
		a.Global(v.Bool)
	case "Validator", "ValidatorOS":
		if v.Validator == nil {
			return fmt.Errorf("argument %q: %s without validator", in.Arg, in.Method)
		}

		str, os := validators(v.Validator)
		if v.Validator.OS {
			a.ValidatorOS(os)
		} else {
			a.Validator(str)
		}
	default:
		return fmt.Errorf("argument has no method %q", in.Method)
	}

	return nil
}
