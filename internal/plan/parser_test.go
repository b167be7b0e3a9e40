package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/attr"
	"argspec-generator/internal/common"
	"argspec-generator/internal/schema"
)

func required(typ string) Classification {
	return Classification{Cardinality: CardinalityRequired, Base: schema.MustParseType(typ)}
}

func directive(t *testing.T, text string) *attr.Entry {
	t.Helper()

	entries, err := attr.Parse(text, common.Pos{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	return &entries[0]
}

func TestResolveParser_NoDirective(t *testing.T) {
	flagSpec, err := ResolveParser(Classification{Cardinality: CardinalityFlag, Base: schema.Named("bool")}, nil)
	require.NoError(t, err)
	assert.Equal(t, ParserNone, flagSpec.Kind)
	assert.Nil(t, flagSpec.Validator)

	counter, err := ResolveParser(Classification{Cardinality: CardinalityCounter, Base: schema.Named("u64")}, nil)
	require.NoError(t, err)
	assert.Equal(t, ParserNone, counter.Kind)

	tests := []struct {
		typ     string
		call    string
		result  ResultShape
		imports []string
		quals   []string
	}{
		{"float64", "strconv.ParseFloat(s, 64)", ResultValueError, []string{"strconv"}, nil},
		{"f32", "strconv.ParseFloat(s, 32)", ResultValueError, []string{"strconv"}, nil},
		{"int", "strconv.Atoi(s)", ResultValueError, []string{"strconv"}, nil},
		{"u32", "strconv.ParseUint(s, 10, 32)", ResultValueError, []string{"strconv"}, nil},
		{"bool", "strconv.ParseBool(s)", ResultValueError, []string{"strconv"}, nil},
		{"time.Duration", "time.ParseDuration(s)", ResultValueError, []string{"time"}, nil},
		{"net.IP", "new(net.IP).UnmarshalText([]byte(s))", ResultError, nil, []string{"net"}},
		{"Level", "new(Level).UnmarshalText([]byte(s))", ResultError, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			spec, err := ResolveParser(required(tt.typ), nil)
			require.NoError(t, err)
			assert.Equal(t, ParserTryFromStr, spec.Kind)
			assert.Empty(t, spec.Func)
			require.NotNil(t, spec.Validator)
			assert.Equal(t, tt.call, spec.Validator.Call)
			assert.Equal(t, tt.call, spec.Convert)
			assert.Equal(t, "s", spec.Validator.Var)
			assert.Equal(t, tt.result, spec.Validator.Result)
			assert.Equal(t, tt.imports, spec.Validator.Imports)
			assert.Equal(t, tt.quals, spec.Validator.Qualifiers)
			assert.False(t, spec.Validator.OS)
		})
	}
}

func TestResolveParser_StringNeedsNoValidator(t *testing.T) {
	for _, typ := range []string{"string", "String"} {
		spec, err := ResolveParser(required(typ), nil)
		require.NoError(t, err)
		assert.Equal(t, ParserTryFromStr, spec.Kind)
		assert.Nil(t, spec.Validator)
		assert.Equal(t, "s", spec.Convert)
	}
}

func TestResolveParser_NoDefaultForWrappers(t *testing.T) {
	_, err := ResolveParser(required("Vec[String]"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestResolveParser_Directives(t *testing.T) {
	tests := []struct {
		name      string
		attr      string
		kind      ParserKind
		fn        string
		convert   string
		validator string
		os        bool
	}{
		{"from_str default", "parse(from_str)", ParserFromStr, "", "(Level)(s)", "", false},
		{"from_str func", "parse(from_str=strings.ToUpper)", ParserFromStr, "strings.ToUpper", "strings.ToUpper(s)", "", false},
		{"try_from_str func", "parse(try_from_str=parseHex)", ParserTryFromStr, "parseHex", "parseHex(s)", "parseHex(s)", false},
		{"try_from_str default", "parse(try_from_str)", ParserTryFromStr, "", "new(Level).UnmarshalText([]byte(s))", "new(Level).UnmarshalText([]byte(s))", false},
		{"from_os_str default", "parse(from_os_str)", ParserFromOsStr, "", "(Level)(b)", "", true},
		{"from_os_str func", "parse(from_os_str=pathFromBytes)", ParserFromOsStr, "pathFromBytes", "pathFromBytes(b)", "", true},
		{"try_from_os_str func", "parse(try_from_os_str=decode)", ParserTryFromOsStr, "decode", "decode(b)", "decode(b)", true},
		{"string form", "parse='try_from_str=hex.Decode'", ParserTryFromStr, "hex.Decode", "hex.Decode(s)", "hex.Decode(s)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ResolveParser(required("Level"), directive(t, tt.attr))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, spec.Kind)
			assert.Equal(t, tt.fn, spec.Func)
			assert.Equal(t, tt.convert, spec.Convert)
			assert.Equal(t, tt.os, spec.Kind.IsOS())

			if tt.validator == "" {
				assert.Nil(t, spec.Validator)
				return
			}

			require.NotNil(t, spec.Validator)
			assert.Equal(t, tt.validator, spec.Validator.Call)
			assert.Equal(t, tt.os, spec.Validator.OS)
		})
	}
}

func TestResolveParser_TryValidatorReinvokesFunction(t *testing.T) {
	spec, err := ResolveParser(required("u32"), directive(t, "parse(try_from_str=parseHex)"))
	require.NoError(t, err)

	require.NotNil(t, spec.Validator)
	assert.Equal(t, spec.Convert, spec.Validator.Call)
	assert.True(t, spec.Kind.IsTry())
}

func TestResolveParser_QualifiedFunction(t *testing.T) {
	spec, err := ResolveParser(required("u32"), directive(t, "parse(try_from_str=hexutil.Parse)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hexutil"}, spec.Validator.Qualifiers)
}

func TestResolveParser_Errors(t *testing.T) {
	tests := []struct {
		attr string
		want error
	}{
		{"parse(try_from_os_str)", ErrMissingParserFunction},
		{"parse(from_bytes=x)", ErrAttributeParse},
		{"parse", ErrAttributeParse},
		{"parse(from_str, try_from_str)", ErrAttributeParse},
	}

	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			_, err := ResolveParser(required("Level"), directive(t, tt.attr))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err)
		})
	}
}
