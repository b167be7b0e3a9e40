package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the root command line.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging."`
	Strict  bool             `help:"Reject unknown attributes instead of warning."`
	ModFile string           `name:"modfile" help:"go.mod used for metadata defaults." default:"go.mod" type:"path"`
	Version kong.VersionFlag `help:"Show version and exit."`

	Compile CompileCmd `cmd:"" help:"Generate builder code from schemas."`
	Check   CheckCmd   `cmd:"" help:"Validate schemas and print the resolved command tree."`
	Inspect InspectCmd `cmd:"" help:"Dump the compiled command tree of one schema."`
	Export  ExportCmd  `cmd:"" help:"Convert annotated Go packages into a YAML schema."`
	Init    InitCmd    `cmd:"" help:"Write a starter YAML schema."`
}

// Globals is shared state handed to every command.
type Globals struct {
	Logger *slog.Logger
	Out    io.Writer
}

// AfterApply installs the logger once flags are parsed.
func (c *CLI) AfterApply(g *Globals) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}

	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)

	return nil
}
