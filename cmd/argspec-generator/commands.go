package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"argspec-generator/internal/analyze"
	"argspec-generator/internal/gen"
	"argspec-generator/internal/match"
	"argspec-generator/internal/plan"
	"argspec-generator/internal/schema"
)

// CompileCmd renders builder code for every input.
type CompileCmd struct {
	Inputs   []string `arg:"" help:"YAML schema files or Go package patterns."`
	Output   string   `short:"o" help:"Output directory." default:"." type:"path"`
	Package  string   `short:"p" help:"Package name of generated Go code." default:"cli"`
	Func     string   `help:"Name of the exported root builder." default:"BuildCommand"`
	Builder  string   `help:"Import path of the builder contract." default:"argspec-generator/argbuilder"`
	Formats  []string `short:"f" name:"format" help:"Output formats (go, json, yaml)." default:"go"`
	Root     string   `help:"Root item, overriding the schema."`
	Parallel int      `help:"Inputs compiled concurrently." default:"4"`
}

// Run implements the compile command.
func (c *CompileCmd) Run(g *Globals, cli *CLI) error {
	formats := make([]gen.Format, 0, len(c.Formats))

	for _, name := range c.Formats {
		f, err := gen.ParseFormat(name)
		if err != nil {
			return err
		}

		formats = append(formats, f)
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(c.Parallel, 1))

	names := outputs(c.Inputs, c.Func)

	for i, input := range c.Inputs {
		eg.Go(func() error {
			spec, err := compileInput(ctx, cli, input, c.Root, g.Logger)
			if err != nil {
				return err
			}

			config := gen.GeneratorConfig{
				PackageName:   c.Package,
				OutputDir:     c.Output,
				FuncName:      names[i].FuncName,
				HelperPrefix:  names[i].HelperPrefix,
				BuilderImport: c.Builder,
				FileBase:      names[i].FileBase,
				Formats:       formats,
			}

			files, err := gen.NewGenerator(config).Generate(spec)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			if err := gen.WriteFiles(files, c.Output); err != nil {
				return err
			}

			for _, f := range files {
				g.Logger.Info("generated", "input", input, "file", filepath.Join(c.Output, f.Filename))
			}

			return nil
		})
	}

	return eg.Wait()
}

// output names the generated files and functions of one input.
type output struct {
	FileBase     string
	FuncName     string
	HelperPrefix string
}

// outputs names the outputs of every input. A single input keeps the plain
// "argspec" base and the configured function. Several inputs share one
// package, so each gets its own file base, root function and helper prefix,
// derived from its stem. Repeated stems take their directory as a prefix and
// then a number.
func outputs(inputs []string, funcName string) []output {
	if len(inputs) <= 1 {
		return []output{{FileBase: "argspec", FuncName: funcName}}
	}

	out := make([]output, len(inputs))
	used := make(map[string]bool, len(inputs))

	for i, input := range inputs {
		stem := inputStem(input)
		if used[stem] {
			if dir := inputStem(filepath.Dir(input)); dir != "input" {
				stem = dir + "_" + stem
			}
		}

		base := stem
		for n := 2; used[stem]; n++ {
			stem = base + "_" + strconv.Itoa(n)
		}

		used[stem] = true

		ident := exportedIdent(stem)
		out[i] = output{FileBase: stem + "_argspec", FuncName: funcName + ident, HelperPrefix: ident}
	}

	return out
}

// inputStem is the snake_case base name of a schema file or package pattern.
func inputStem(input string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = strings.Trim(name, "./")

	words := match.TokenizeIdent(name)
	if len(words) == 0 {
		return "input"
	}

	return strings.Join(words, "_")
}

func exportedIdent(stem string) string {
	var b strings.Builder

	for _, w := range strings.Split(stem, "_") {
		if w == "" {
			continue
		}

		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}

	return b.String()
}

// CheckCmd validates inputs and prints their command trees.
type CheckCmd struct {
	Inputs []string `arg:"" help:"YAML schema files or Go package patterns."`
	Root   string   `help:"Root item, overriding the schema."`
}

// Run implements the check command. Inputs are checked concurrently and
// reported in argument order.
func (c *CheckCmd) Run(g *Globals, cli *CLI) error {
	reports := make([]string, len(c.Inputs))

	var (
		mu     sync.Mutex
		failed []string
	)

	var eg errgroup.Group

	for i, input := range c.Inputs {
		eg.Go(func() error {
			spec, err := compileInput(context.Background(), cli, input, c.Root, g.Logger)
			if err != nil {
				mu.Lock()
				failed = append(failed, input)
				mu.Unlock()

				reports[i] = fmt.Sprintf("%s: FAIL\n  %v\n", input, err)

				return nil
			}

			reports[i] = fmt.Sprintf("%s: OK\n%s", input, plan.FormatReport(plan.GenerateReport(spec)))

			return nil
		})
	}

	_ = eg.Wait()

	for _, r := range reports {
		fmt.Fprintln(g.Out, r)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d inputs failed: %s", len(failed), len(c.Inputs), strings.Join(failed, ", "))
	}

	return nil
}

// InspectCmd dumps the compiled command tree or its invocation list.
type InspectCmd struct {
	Input       string `arg:"" help:"YAML schema file or Go package pattern."`
	Root        string `help:"Root item, overriding the schema."`
	Invocations bool   `help:"Print the emitted invocations instead of the command tree."`
}

// Run implements the inspect command.
func (c *InspectCmd) Run(g *Globals, cli *CLI) error {
	spec, err := compileInput(context.Background(), cli, c.Input, c.Root, g.Logger)
	if err != nil {
		return err
	}

	if !c.Invocations {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(g.Out, spec)

		return nil
	}

	invocations, err := gen.Emit(spec)
	if err != nil {
		return err
	}

	for _, in := range invocations {
		fmt.Fprintln(g.Out, in.String())
	}

	return nil
}

// ExportCmd converts Go packages into a YAML schema document.
type ExportCmd struct {
	Patterns []string `arg:"" help:"Go package patterns."`
	Output   string   `short:"o" help:"Schema file to write; stdout when empty." type:"path"`
	Root     string   `help:"Root item, overriding the directives."`
}

// Run implements the export command.
func (c *ExportCmd) Run(g *Globals) error {
	set, err := analyze.NewAnalyzer("").LoadPackages(context.Background(), c.Patterns...)
	if err != nil {
		return err
	}

	if c.Root != "" {
		set.Root = c.Root
	}

	if c.Output != "" {
		if err := schema.WriteFile(set, c.Output); err != nil {
			return err
		}

		g.Logger.Info("exported schema", "file", c.Output, "items", len(set.Items))

		return nil
	}

	data, err := schema.Marshal(set)
	if err != nil {
		return err
	}

	_, err = g.Out.Write(data)

	return err
}

// InitCmd writes a starter schema.
type InitCmd struct {
	Output string `arg:"" optional:"" help:"Schema file to create." default:"argspec.yaml" type:"path"`
	Name   string `help:"Command name." default:"app"`
	Force  bool   `help:"Overwrite an existing file."`
}

// Run implements the init command.
func (c *InitCmd) Run(g *Globals) error {
	if fileExists(c.Output) && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", c.Output)
	}

	set, err := schema.Parse([]byte(starterSchema(c.Name)))
	if err != nil {
		return fmt.Errorf("building starter schema: %w", err)
	}

	if err := schema.WriteFile(set, c.Output); err != nil {
		return err
	}

	g.Logger.Info("wrote starter schema", "file", c.Output)

	return nil
}

func starterSchema(name string) string {
	return fmt.Sprintf(`version: "1"
root: App
items:
  - name: App
    doc: [A new command-line tool.]
    attrs: name=%s
    members:
      - name: verbose
        type: uint64
        doc: [Increase logging verbosity.]
        attrs: short, long
      - name: config
        type: "*string"
        attrs: short, long, value_name=FILE
      - name: cmd
        type: Command
        attrs: subcommand
  - name: Command
    kind: commands
    members:
      - name: Run
        doc: [Run the tool.]
        fields:
          - {name: dry_run, type: bool, attrs: long}
`, quoteAttr(name))
}

func quoteAttr(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
