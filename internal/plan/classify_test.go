package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/schema"
)

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		typ    string
		custom bool
		card   Cardinality
		base   string
	}{
		{"bool", false, CardinalityFlag, "bool"},
		{"uint64", false, CardinalityCounter, "uint64"},
		{"u64", false, CardinalityCounter, "u64"},
		{"*string", false, CardinalityOptional, "string"},
		{"Option<String>", false, CardinalityOptional, "String"},
		{"[]string", false, CardinalityList, "string"},
		{"Vec<u32>", false, CardinalityList, "u32"},
		{"float64", false, CardinalityRequired, "float64"},
		{"time.Duration", false, CardinalityRequired, "time.Duration"},
		{"Box[int]", false, CardinalityRequired, "Box[int]"},
		{"*bool", false, CardinalityOptional, "bool"},
		{"Option<Vec<String>>", false, CardinalityOptional, "Vec[String]"},
		// a custom parser suppresses the flag and counter rules only
		{"bool", true, CardinalityRequired, "bool"},
		{"u64", true, CardinalityRequired, "u64"},
		{"Option<bool>", true, CardinalityOptional, "bool"},
		{"[]uint64", true, CardinalityList, "uint64"},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := cfg.Classify(schema.MustParseType(tt.typ), tt.custom)
			require.NoError(t, err)
			assert.Equal(t, tt.card, got.Cardinality)
			assert.Equal(t, tt.base, got.Base.String())
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	cfg := DefaultConfig()

	for _, typ := range []string{
		"map[string]int",
		"Pair[int, string]",
		"Option[int, string]",
		"Option",
		"Vec",
		"[4]byte",
		"func(string) int",
		"chan int",
		"",
	} {
		t.Run(typ, func(t *testing.T) {
			_, err := cfg.Classify(schema.MustParseType(typ), false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedType), err)
		})
	}
}

func TestClassify_ConfiguredWrappers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OptionalWrappers = append(cfg.OptionalWrappers, "Maybe")
	cfg.CounterTypes = []string{"Count"}

	got, err := cfg.Classify(schema.MustParseType("Maybe[int]"), false)
	require.NoError(t, err)
	assert.Equal(t, CardinalityOptional, got.Cardinality)

	got, err = cfg.Classify(schema.MustParseType("Count"), false)
	require.NoError(t, err)
	assert.Equal(t, CardinalityCounter, got.Cardinality)

	got, err = cfg.Classify(schema.MustParseType("u64"), false)
	require.NoError(t, err)
	assert.Equal(t, CardinalityRequired, got.Cardinality)
}

func TestCardinality_String(t *testing.T) {
	assert.Equal(t, "flag", CardinalityFlag.String())
	assert.Equal(t, "required", CardinalityRequired.String())
	assert.Equal(t, "unknown", Cardinality(99).String())
}
