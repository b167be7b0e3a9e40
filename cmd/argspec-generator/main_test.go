package main

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/gen"
	"argspec-generator/internal/pkgmeta"
	"argspec-generator/internal/schema"
)

const schemas = "../../examples/schemas"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cli := &CLI{}
	globals := &Globals{Out: &out}

	k, err := kong.New(cli,
		kong.Name("argspec-generator"),
		kong.Bind(globals, cli),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	ctx, err := k.Parse(args)
	require.NoError(t, err)

	err = ctx.Run()

	return out.String(), err
}

func TestCompile_GoOutput(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "compile", "-o", dir, "-p", "gitcli", filepath.Join(schemas, "git.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "argspec.go"))
	require.NoError(t, err)

	src := string(data)
	assert.Contains(t, src, "package gitcli")
	assert.Contains(t, src, `cmd := f.NewCommand("git")`)
	assert.Contains(t, src, `"net/url"`)
	assert.Contains(t, src, "cmd.Subcommand(buildRemote(f))")
}

func TestCompile_SeveralInputsAndFormats(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "compile", "-o", dir, "-f", "json", "-f", "yaml",
		filepath.Join(schemas, "myapp.yaml"), filepath.Join(schemas, "hexreader.yaml"))
	require.NoError(t, err)

	for _, name := range []string{"myapp_argspec.json", "myapp_argspec.yaml", "hexreader_argspec.json", "hexreader_argspec.yaml"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "hexreader_argspec.json"))
	require.NoError(t, err)

	doc, err := gen.DecodeDocument(data, gen.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "hexreader", doc.Root)
}

func TestCompile_BadFormat(t *testing.T) {
	_, err := run(t, "compile", "-f", "toml", filepath.Join(schemas, "myapp.yaml"))
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCheck(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
items:
  - name: Cli
    members:
      - {name: a, type: string}
      - {name: b, type: string, attrs: name=a}
`), 0o600))

	out, err := run(t, "check", filepath.Join(schemas, "myapp.yaml"), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 inputs failed")

	assert.Contains(t, out, "myapp.yaml: OK")
	assert.Contains(t, out, "=== myapp (MyApp) ===")
	assert.Contains(t, out, "bad.yaml: FAIL")
	assert.Contains(t, out, "duplicate argument")
}

func TestCheck_Strict(t *testing.T) {
	typo := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte(`
items:
  - name: Cli
    members:
      - {name: a, type: string, attrs: shortt}
`), 0o600))

	_, err := run(t, "check", typo)
	require.NoError(t, err)

	_, err = run(t, "--strict", "check", typo)
	assert.Error(t, err)
}

func TestCompileInput_LogsWarnings(t *testing.T) {
	typo := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte(`
items:
  - name: Cli
    members:
      - {name: a, type: string, attrs: shortt}
`), 0o600))

	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := compileInput(context.Background(), &CLI{ModFile: "go.mod"}, typo, "", logger)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "code=unknown_attribute")
	assert.Contains(t, logs.String(), "did you mean short?")
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", "--invocations", filepath.Join(schemas, "myapp.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `command [] "myapp"`)
	assert.Contains(t, out, `set [].speed DefaultValue="42"`)

	out, err = run(t, "inspect", filepath.Join(schemas, "myapp.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "plan.Spec")
	assert.Contains(t, out, `Name: (string) (len=5) "myapp"`)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "argspec.yaml")

	_, err := run(t, "init", "--name", "tool", path)
	require.NoError(t, err)

	set, err := schema.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "App", set.Root)

	out, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "=== tool (App) ===")

	_, err = run(t, "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init", "--force", path)
	assert.NoError(t, err)
}

func TestEnvironment(t *testing.T) {
	mod := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(mod, []byte("module example.com/tools/widget/v2\n"), 0o600))

	t.Setenv(pkgmeta.KeyVersion, "2.1.0")

	env := environment(mod, nil)
	assert.Equal(t, "widget", env.Get(pkgmeta.KeyName))
	assert.Equal(t, "2.1.0", env.Get(pkgmeta.KeyVersion))

	t.Setenv(pkgmeta.KeyName, "override")
	assert.Equal(t, "override", environment(mod, nil).Get(pkgmeta.KeyName))

	assert.Equal(t, "2.1.0", environment(filepath.Join(t.TempDir(), "go.mod"), nil).Get(pkgmeta.KeyVersion))
}

func TestOutputs(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   []output
	}{
		{
			name:   "single input",
			inputs: []string{"schemas/git.yaml"},
			want:   []output{{FileBase: "argspec", FuncName: "BuildCommand"}},
		},
		{
			name:   "several inputs",
			inputs: []string{"schemas/git.yaml", "HexReader.yml", "./..."},
			want: []output{
				{FileBase: "git_argspec", FuncName: "BuildCommandGit", HelperPrefix: "Git"},
				{FileBase: "hex_reader_argspec", FuncName: "BuildCommandHexReader", HelperPrefix: "HexReader"},
				{FileBase: "input_argspec", FuncName: "BuildCommandInput", HelperPrefix: "Input"},
			},
		},
		{
			name:   "same name in different directories",
			inputs: []string{"a/x.yaml", "b/x.yaml", "b/x.yml"},
			want: []output{
				{FileBase: "x_argspec", FuncName: "BuildCommandX", HelperPrefix: "X"},
				{FileBase: "b_x_argspec", FuncName: "BuildCommandBX", HelperPrefix: "BX"},
				{FileBase: "b_x_2_argspec", FuncName: "BuildCommandBX2", HelperPrefix: "BX2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputs(tt.inputs, "BuildCommand"))
		})
	}
}

func TestCompile_SeveralGoInputsShareOnePackage(t *testing.T) {
	src, err := os.ReadFile(filepath.Join(schemas, "git.yaml"))
	require.NoError(t, err)

	in := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(in, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(in, dir, "x.yaml"), src, 0o600))
	}

	out := t.TempDir()

	_, err = run(t, "compile", "-o", out, filepath.Join(in, "a", "x.yaml"), filepath.Join(in, "b", "x.yaml"))
	require.NoError(t, err)

	funcs := map[string]string{}

	for _, name := range []string{"x_argspec.go", "b_x_argspec.go"} {
		file, err := parser.ParseFile(token.NewFileSet(), filepath.Join(out, name), nil, 0)
		require.NoError(t, err)

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}

			prev, dup := funcs[fn.Name.Name]
			assert.False(t, dup, "%s defined in %s and %s", fn.Name.Name, prev, name)
			funcs[fn.Name.Name] = name
		}
	}

	assert.Contains(t, funcs, "BuildCommandX")
	assert.Contains(t, funcs, "BuildCommandBX")
	assert.Contains(t, funcs, "buildXRemote")
	assert.Contains(t, funcs, "buildBXRemote")
}

func TestExport_GoPackageToYAML(t *testing.T) {
	out, err := run(t, "export", "../../examples/cookie")
	require.NoError(t, err)

	set, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "MakeCookie", set.Root)
	assert.NotNil(t, set.Lookup("Step"))
}
