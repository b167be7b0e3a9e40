// Package main provides the CLI entrypoint for argspec-generator.
//
// argspec-generator compiles declarative argument schemas (annotated Go
// structs or YAML documents) into builder code for a command-line parser:
//   - compile: render Go builder functions, or JSON/YAML invocation lists
//   - check: validate and print the resolved command tree
//   - inspect: dump the compiled command tree
//   - export: convert annotated Go packages into a YAML schema
//   - init: write a starter schema
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

func main() {
	cli := &CLI{}
	globals := &Globals{Logger: slog.Default(), Out: os.Stdout}

	ctx := kong.Parse(cli,
		kong.Name("argspec-generator"),
		kong.Description("Compile declarative argument schemas into command-line builder code."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Bind(globals, cli),
	)

	if err := ctx.Run(); err != nil {
		globals.Logger.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
