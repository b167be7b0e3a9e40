package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/common"
)

type mapEnv map[string]string

func (m mapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestNormalizeDoc(t *testing.T) {
	assert.Equal(t, "The help message that spans.",
		NormalizeDoc([]string{"/// The help message", "/// that spans."}))
	assert.Equal(t, "x", NormalizeDoc([]string{"  ", "// x "}))
	assert.Equal(t, "block doc", NormalizeDoc([]string{"/**", " * block doc", " */"}))
	assert.Equal(t, "plain", NormalizeDoc([]string{"plain"}))
	assert.Equal(t, "", NormalizeDoc(nil))
}

func TestCollect_DocFirstExplicitWins(t *testing.T) {
	pos := common.Pos{File: "cli.yaml", Line: 4}

	got, err := Collect(
		[]Raw{Text("short=b,help='explicit help'", pos)},
		[]string{"Doc help."},
		MemberLevel,
		pos,
	)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "help", got[0].Key)
	assert.Equal(t, "Doc help.", got[0].Value.AsString())
	assert.Equal(t, "explicit help", got.Get("help"))

	eff := got.Effective()
	require.Len(t, eff, 2)
	assert.Equal(t, "help", eff[0].Key)
	assert.Equal(t, "explicit help", eff[0].Value.AsString())
	assert.Equal(t, "short", eff[1].Key)
}

func TestCollect_ItemLevelDocIsAbout(t *testing.T) {
	got, err := Collect(nil, []string{"An example."}, ItemLevel, common.Pos{})
	require.NoError(t, err)
	assert.Equal(t, "An example.", got.Get("about"))
	assert.False(t, got.Has("help"))
}

func TestCollect_StructuredThenText(t *testing.T) {
	raws := []Raw{
		Structured(common.Pos{}, Entry{Key: "long", Value: String("speed")}),
		Text("long=velocity", common.Pos{}),
	}

	got, err := Collect(raws, nil, MemberLevel, common.Pos{})
	require.NoError(t, err)
	assert.Equal(t, "velocity", got.Get("long"))
}

func TestCollect_SyntaxError(t *testing.T) {
	_, err := Collect([]Raw{Text("help='open", common.Pos{File: "x.go", Line: 2, Column: 5})}, nil, MemberLevel, common.Pos{})

	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, "x.go:2:10", syn.Pos.String())
}

func TestEntries_OrEnv(t *testing.T) {
	env := mapEnv{"PKG_NAME": "from-env"}

	withAttr := Entries{{Key: "name", Value: String("explicit")}}
	assert.Equal(t, "explicit", withAttr.OrEnv("name", "PKG_NAME", env))

	assert.Equal(t, "from-env", Entries{}.OrEnv("name", "PKG_NAME", env))
	assert.Equal(t, "", Entries{}.OrEnv("version", "PKG_VERSION", env))
	assert.Equal(t, "", Entries{}.OrEnv("version", "PKG_VERSION", nil))
}

func TestLiteral_Conversions(t *testing.T) {
	b, err := String("false").AsBool()
	require.NoError(t, err)
	assert.False(t, b)

	_, err = String("maybe").AsBool()
	assert.Error(t, err)

	assert.Equal(t, []string{"fast", "slow"}, String("fast| slow |").AsList("|"))
	assert.Equal(t, []string{"a", "b"}, List("a", "b").AsList("|"))
	assert.Equal(t, "a,b", List("a", "b").AsString())
}

func TestEntries_Without(t *testing.T) {
	l := Entries{{Key: "name"}, {Key: "short"}, {Key: "parse"}}
	assert.Equal(t, Entries{{Key: "short"}}, l.Without("name", "parse"))
}
