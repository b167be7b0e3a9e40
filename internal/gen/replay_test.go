package gen

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/argbuilder"
	"argspec-generator/internal/plan"
)

func replay(t *testing.T, doc string, validators ValidatorFunc) *argbuilder.RecordedCommand {
	t.Helper()

	invocations, err := Emit(compile(t, doc))
	require.NoError(t, err)

	cmd, err := Replay(invocations, argbuilder.Recorder{}, validators)
	require.NoError(t, err)

	rec, ok := cmd.(*argbuilder.RecordedCommand)
	require.True(t, ok)

	return rec
}

func TestReplay_MyApp(t *testing.T) {
	parseFloat := func(v *plan.Validator) (func(string) error, func([]byte) error) {
		return func(s string) error {
			_, err := strconv.ParseFloat(s, 64)
			return err
		}, nil
	}

	root := replay(t, myApp, parseFloat)

	assert.Equal(t, "myapp", root.Name)
	assert.Equal(t, []string{`About("An example of argspec usage.")`}, root.Trace())
	require.Len(t, root.Args, 4)

	speed := root.FindArg("speed")
	require.NotNil(t, speed)
	assert.Equal(t, []string{
		`TakesValue(true)`,
		`Multiple(false)`,
		`Required(false)`,
		`Validator(fn)`,
		`Short("s")`,
		`Long("speed")`,
		`Help("Set speed")`,
		`DefaultValue("42")`,
	}, speed.Trace())

	require.NotNil(t, speed.Validate)
	assert.NoError(t, speed.Validate("4.2"))
	assert.Error(t, speed.Validate("fast"))
}

func TestReplay_Nested(t *testing.T) {
	root := replay(t, remote, nil)

	r := root.FindSubcommand("remote")
	require.NotNil(t, r)

	show := r.FindSubcommand("show")
	require.NotNil(t, show)

	names := show.FindArg("names")
	require.NotNil(t, names)
	assert.Contains(t, names.Trace(), `PossibleValues(["origin" "upstream"])`)
	assert.Contains(t, names.Trace(), `Setting("Aliases", defaultAliases)`)

	hex := show.FindArg("hex")
	require.NotNil(t, hex)
	require.NotNil(t, hex.ValidateOS)
	assert.NoError(t, hex.ValidateOS([]byte("zz")))
}

func TestReplay_Errors(t *testing.T) {
	_, err := Replay(nil, argbuilder.Recorder{}, nil)
	assert.EqualError(t, err, "no root command constructed")

	_, err = Replay([]Invocation{{Op: OpArg, Scope: "x", Arg: "a"}}, argbuilder.Recorder{}, nil)
	assert.ErrorContains(t, err, "before its command")

	_, err = Replay([]Invocation{
		{Op: OpCommand, Value: stringValue("app")},
		{Op: OpSet, Method: "Frobnicate", Value: boolValue(true)},
	}, argbuilder.Recorder{}, nil)
	assert.ErrorContains(t, err, `command has no method "Frobnicate"`)

	failing := func(*plan.Validator) (func(string) error, func([]byte) error) {
		return func(string) error { return errors.New("nope") }, nil
	}

	cmd, err := Replay([]Invocation{
		{Op: OpCommand, Value: stringValue("app")},
		{Op: OpArg, Arg: "n", Value: stringValue("n")},
		{Op: OpSet, Arg: "n", Method: "Validator", Value: Value{Kind: ValueValidator, Validator: &plan.Validator{Var: "s", Call: "check(s)"}}},
		{Op: OpAddArg, Arg: "n"},
	}, argbuilder.Recorder{}, failing)
	require.NoError(t, err)

	n := cmd.(*argbuilder.RecordedCommand).FindArg("n")
	require.NotNil(t, n)
	assert.EqualError(t, n.Validate("1"), "nope")
}
