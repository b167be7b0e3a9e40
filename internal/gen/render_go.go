package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"argspec-generator/internal/common"
	"argspec-generator/internal/plan"
)

// builderPkg is the name generated code uses for the contract package.
const builderPkg = "argbuilder"

type importSpec struct {
	Alias string
	Path  string
}

type builderFunc struct {
	Name  string
	Scope string
	Doc   string
	Body  []string
	deps  []string
}

type goFileData struct {
	PackageName string
	Imports     []importSpec
	Funcs       []builderFunc
}

// renderGo writes one builder function per command scope. Children are
// declared before their parents.
func (g *Generator) renderGo(filename string, pkgImports map[string]string, invocations []Invocation) ([]byte, error) {
	funcs, err := g.builderFuncs(invocations)
	if err != nil {
		return nil, err
	}

	imports, err := g.goImports(pkgImports, invocations)
	if err != nil {
		return nil, err
	}

	data := goFileData{
		PackageName: g.config.PackageName,
		Imports:     imports,
		Funcs:       funcs,
	}

	var buf bytes.Buffer
	if err := builderTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

func (g *Generator) builderFuncs(invocations []Invocation) ([]builderFunc, error) {
	var (
		funcs []builderFunc
		index = map[string]int{}
		names = map[string]bool{}
	)

	scopeFunc := func(scope string) *builderFunc {
		i, ok := index[scope]
		if !ok {
			name := g.funcName(scope, names)
			i = len(funcs)
			index[scope] = i
			funcs = append(funcs, builderFunc{Name: name, Scope: scope})
		}

		return &funcs[i]
	}

	// Register every scope first so subcommand calls can name their builder.
	for _, in := range invocations {
		if in.Op == OpCommand {
			scopeFunc(in.Scope)
		}
	}

	for _, in := range invocations {
		fn := scopeFunc(in.Scope)

		switch in.Op {
		case OpCommand:
			if len(fn.Body) > 0 {
				return nil, fmt.Errorf("command scope %q constructed twice", in.Scope)
			}

			fn.Doc = fmt.Sprintf("%s builds the %q command.", fn.Name, in.Value.Str)
			fn.Body = append(fn.Body, "cmd := f.NewCommand("+strconv.Quote(in.Value.Str)+")")
		case OpArg:
			fn.Body = append(fn.Body, "{", "a := f.NewArg("+strconv.Quote(in.Value.Str)+")")
		case OpSet:
			recv := "cmd"
			if in.Arg != "" {
				recv = "a"
			}

			fn.Body = append(fn.Body, recv+"."+in.Method+"("+goArgs(in)+")")
		case OpAddArg:
			fn.Body = append(fn.Body, "cmd.Arg(a)", "}")
		case OpSubcommand:
			child, ok := index[in.Value.Str]
			if !ok {
				return nil, fmt.Errorf("subcommand scope %q was never constructed", in.Value.Str)
			}

			fn.Body = append(fn.Body, "cmd.Subcommand("+funcs[child].Name+"(f))")
			fn.deps = append(fn.deps, in.Value.Str)
		default:
			return nil, fmt.Errorf("unknown op %d", int(in.Op))
		}
	}

	for i := range funcs {
		funcs[i].Body = append(funcs[i].Body, "return cmd")
	}

	order, err := topoSort(len(funcs), func(i int) []int {
		deps := make([]int, 0, len(funcs[i].deps))
		for _, d := range funcs[i].deps {
			deps = append(deps, index[d])
		}

		return deps
	})
	if err != nil {
		return nil, fmt.Errorf("ordering builders: %w", err)
	}

	sorted := make([]builderFunc, 0, len(order))
	for _, i := range order {
		sorted = append(sorted, funcs[i])
	}

	return sorted, nil
}

// funcName names the builder of scope. The root gets the configured exported
// name; nested commands get build<Prefix><Path>, suffixed on collision.
func (g *Generator) funcName(scope string, used map[string]bool) string {
	name := g.config.FuncName
	if name == "" {
		name = "BuildCommand"
	}

	if scope != "" {
		name = "build" + g.config.HelperPrefix + goIdent(scope)
	}

	base := name
	for n := 2; used[name]; n++ {
		name = base + strconv.Itoa(n)
	}

	used[name] = true

	return name
}

// goIdent camel-cases a scope such as "remote/set-url" into RemoteSetUrl.
func goIdent(scope string) string {
	parts := strings.FieldsFunc(scope, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder

	for _, p := range parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}

	if b.Len() == 0 {
		return "Command"
	}

	return b.String()
}

func goArgs(in Invocation) string {
	v := goValue(in.Value, in.Key != "")
	if in.Value.Kind == ValueRaw && variadic(in.Method) {
		v += "..."
	}
	if in.Key != "" {
		return strconv.Quote(in.Key) + ", " + v
	}

	return v
}

// goValue renders a setter argument. Generic settings take a single value,
// so lists become a slice literal there.
func goValue(v Value, generic bool) string {
	switch v.Kind {
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueList:
		quoted := make([]string, 0, len(v.List))
		for _, s := range v.List {
			quoted = append(quoted, strconv.Quote(s))
		}

		if generic {
			return "[]string{" + strings.Join(quoted, ", ") + "}"
		}

		return strings.Join(quoted, ", ")
	case ValueRaw:
		return v.Str
	case ValueValidator:
		return validatorLiteral(v.Validator)
	default:
		return strconv.Quote(v.Str)
	}
}

func validatorLiteral(v *plan.Validator) string {
	param := v.Var + " string"
	if v.OS {
		param = v.Var + " []byte"
	}

	if v.Result == plan.ResultError {
		return "func(" + param + ") error { return " + v.Call + " }"
	}

	return "func(" + param + ") error {\n_, err := " + v.Call + "\nreturn err\n}"
}

// goImports collects the builder contract plus every package validators
// reference. Qualifiers resolve through the schema's import table.
func (g *Generator) goImports(pkgImports map[string]string, invocations []Invocation) ([]importSpec, error) {
	builder := g.config.BuilderImport
	if builder == "" {
		builder = DefaultGeneratorConfig().BuilderImport
	}

	paths := map[string]importSpec{builder: {Path: builder}}
	if common.PkgAlias(builder) != builderPkg {
		paths[builder] = importSpec{Alias: builderPkg, Path: builder}
	}

	for _, in := range invocations {
		v := in.Value.Validator
		if in.Value.Kind != ValueValidator || v == nil {
			continue
		}

		for _, p := range v.Imports {
			paths[p] = importSpec{Path: p}
		}

		for _, q := range v.Qualifiers {
			p, ok := pkgImports[q]
			if !ok {
				return nil, fmt.Errorf("argument %q: package qualifier %q has no import path", in.Arg, q)
			}

			spec := importSpec{Path: p}
			if common.PkgAlias(p) != q {
				spec.Alias = q
			}

			paths[p] = spec
		}
	}

	imports := slices.Collect(maps.Values(paths))

	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})

	return imports, nil
}

var builderTemplate = template.Must(template.New("builder").Parse(`// Code generated by argspec-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Funcs}}
// {{.Doc}}
func {{.Name}}(f argbuilder.Factory) argbuilder.Command {
{{range .Body}}	{{.}}
{{end}}}
{{end}}`))
