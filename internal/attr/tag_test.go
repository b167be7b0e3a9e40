package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/common"
)

func TestParse_Simple(t *testing.T) {
	pos := common.Pos{File: "cli.go", Line: 3, Column: 10}

	entries, err := Parse("short=d,long=debug", pos)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "short", entries[0].Key)
	assert.Equal(t, String("d"), entries[0].Value)
	assert.Equal(t, 10, entries[0].Pos.Column)

	assert.Equal(t, "long", entries[1].Key)
	assert.Equal(t, "debug", entries[1].Value.AsString())
	assert.Equal(t, 18, entries[1].Pos.Column)
}

func TestParse_QuotedGroupsAndBareKeys(t *testing.T) {
	entries, err := Parse(`help='Set speed, fast', parse(try_from_str=parseHex), subcommand, about="say \"hi\""`, common.Pos{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "Set speed, fast", entries[0].Value.AsString())

	parse := entries[1]
	assert.Equal(t, KindGroup, parse.Value.Kind)
	require.Len(t, parse.Value.Group, 1)
	assert.Equal(t, "try_from_str", parse.Value.Group[0].Key)
	assert.Equal(t, "parseHex", parse.Value.Group[0].Value.AsString())

	assert.Equal(t, Bool(true), entries[2].Value)
	assert.Equal(t, `say "hi"`, entries[3].Value.AsString())
}

func TestParse_Empty(t *testing.T) {
	entries, err := Parse("   ", common.Pos{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
		col  int
	}{
		{"missing value", "short=", "missing value", 7},
		{"unterminated", "help='abc", "unterminated string", 6},
		{"unclosed group", "parse(try_from_str", "missing ')'", 19},
		{"no key", "=d", "expected attribute name", 1},
		{"empty entry", "a,,b", "expected attribute name", 3},
		{"trailing comma", "a,", "trailing comma", 3},
		{"stray paren", "a)", "expected ','", 2},
		{"stray quote", "help=it's", "unexpected quote", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, common.Pos{File: "cli.go", Line: 1, Column: 1})
			require.Error(t, err)

			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.Contains(t, syn.Msg, tt.msg)
			assert.Equal(t, tt.col, syn.Pos.Column)
			assert.Equal(t, tt.text, syn.Text)
		})
	}
}

func TestEntry_StringRoundTrip(t *testing.T) {
	entries := Entries{
		{Key: "short", Value: String("d")},
		{Key: "help", Value: String("Set speed, fast")},
		{Key: "subcommand", Value: Bool(true)},
		{Key: "parse", Value: Group(Entry{Key: "from_os_str", Value: Bool(true)})},
	}

	var parts []string
	for _, e := range entries {
		parts = append(parts, e.String())
	}

	assert.Equal(t, []string{"short=d", "help='Set speed, fast'", "subcommand", "parse(from_os_str)"}, parts)

	for i, p := range parts {
		parsed, err := Parse(p, common.Pos{})
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, entries[i].Key, parsed[0].Key)
		assert.Equal(t, entries[i].Value.AsString(), parsed[0].Value.AsString())
	}
}
