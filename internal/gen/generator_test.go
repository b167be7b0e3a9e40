package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/plan"
)

func generate(t *testing.T, doc string, formats ...Format) map[string]string {
	t.Helper()

	config := DefaultGeneratorConfig()
	config.OutputDir = ""
	config.Formats = formats

	files, err := NewGenerator(config).Generate(compile(t, doc))
	require.NoError(t, err)

	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Filename] = string(f.Content)
	}

	return out
}

func TestGenerate_GoSource(t *testing.T) {
	src := generate(t, myApp, FormatGo)["argspec.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, "// Code generated by argspec-generator. DO NOT EDIT.")
	assert.Contains(t, src, "package cli")
	assert.Contains(t, src, `"argspec-generator/argbuilder"`)
	assert.Contains(t, src, `"strconv"`)
	assert.Contains(t, src, "func BuildCommand(f argbuilder.Factory) argbuilder.Command {")
	assert.Contains(t, src, `cmd := f.NewCommand("myapp")`)
	assert.Contains(t, src, `cmd.About("An example of argspec usage.")`)
	assert.Contains(t, src, `a := f.NewArg("speed")`)
	assert.Contains(t, src, "_, err := strconv.ParseFloat(s, 64)")
	assert.Contains(t, src, `a.DefaultValue("42")`)
	assert.Contains(t, src, "cmd.Arg(a)")
	assert.Contains(t, src, "return cmd")
}

func TestGenerate_GoSourceNested(t *testing.T) {
	src := generate(t, remote, FormatGo)["argspec.go"]
	require.NotEmpty(t, src)

	assert.Contains(t, src, `"net/url"`)
	assert.Contains(t, src, "func buildRemoteSetUrl(f argbuilder.Factory) argbuilder.Command {")
	assert.Contains(t, src, "cmd.Subcommand(buildRemoteShow(f))")
	assert.Contains(t, src, "cmd.Subcommand(buildRemote(f))")
	assert.Contains(t, src, "a.Aliases(defaultAliases...)")
	assert.Contains(t, src, `a.PossibleValues("origin", "upstream")`)
	assert.Contains(t, src, "a.ValidatorOS(func(b []byte) error {")
	assert.Contains(t, src, "cmd.SubcommandRequired(true)")

	// Builders are declared leaves first.
	leaf := indexOf(t, src, "func buildRemoteSetUrl(")
	mid := indexOf(t, src, "func buildRemote(")
	root := indexOf(t, src, "func BuildCommand(")
	assert.Less(t, leaf, mid)
	assert.Less(t, mid, root)
}

func TestGenerate_HelperPrefix(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.FuncName = "BuildRemoteTool"
	config.HelperPrefix = "Remote"

	files, err := NewGenerator(config).Generate(compile(t, remote))
	require.NoError(t, err)
	require.Len(t, files, 1)

	src := string(files[0].Content)
	assert.Contains(t, src, "func BuildRemoteTool(f argbuilder.Factory) argbuilder.Command {")
	assert.Contains(t, src, "func buildRemoteRemoteSetUrl(f argbuilder.Factory) argbuilder.Command {")
	assert.Contains(t, src, "cmd.Subcommand(buildRemoteRemote(f))")
	assert.NotContains(t, src, "func buildRemote(")
}

func TestGenerate_RejectsScopeConstructedTwice(t *testing.T) {
	invocations := []Invocation{
		{Op: OpCommand, Value: Value{Str: "tool"}},
		{Op: OpCommand, Scope: "go", Value: Value{Str: "go"}},
		{Op: OpCommand, Scope: "go", Value: Value{Str: "go"}},
		{Op: OpSubcommand, Value: Value{Str: "go"}},
	}

	_, err := NewGenerator(DefaultGeneratorConfig()).builderFuncs(invocations)
	assert.ErrorContains(t, err, `command scope "go" constructed twice`)
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()

	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}

	t.Fatalf("%q not found", sub)

	return -1
}

func TestGenerate_UnresolvedQualifier(t *testing.T) {
	set := compile(t, `
items:
  - name: Cli
    members:
      - {name: addr, type: netip.Addr}
`)

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(set)
	assert.ErrorContains(t, err, `package qualifier "netip" has no import path`)

	set.Imports = map[string]string{"netip": "net/netip"}
	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(set)
	require.NoError(t, err)
	assert.Contains(t, string(files[0].Content), `new(netip.Addr).UnmarshalText([]byte(s))`)
}

func TestGenerate_DataFormats(t *testing.T) {
	out := generate(t, remote, FormatJSON, FormatYAML)
	require.Len(t, out, 2)

	want, err := Emit(compile(t, remote))
	require.NoError(t, err)

	for name, f := range map[string]Format{"argspec.json": FormatJSON, "argspec.yaml": FormatYAML} {
		doc, err := DecodeDocument([]byte(out[name]), f)
		require.NoError(t, err, name)

		assert.Equal(t, "cli", doc.Root, name)
		assert.Equal(t, want, doc.Invocations, name)
	}

	assert.Contains(t, out["argspec.json"], `"op": "subcommand"`)
	assert.Contains(t, out["argspec.yaml"], "op: add_arg")
}

func TestGenerate_NoRoot(t *testing.T) {
	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(&plan.Spec{})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for text, want := range map[string]Format{"go": FormatGo, "JSON": FormatJSON, "yml": FormatYAML, " yaml ": FormatYAML} {
		got, err := ParseFormat(text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	err := WriteFiles([]GeneratedFile{{Filename: "a.go", Content: []byte("package a\n")}}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(data))
}

func TestGoIdent(t *testing.T) {
	assert.Equal(t, "RemoteSetUrl", goIdent("remote/set-url"))
	assert.Equal(t, "Add", goIdent("add"))
	assert.Equal(t, "Command", goIdent("--"))
}
