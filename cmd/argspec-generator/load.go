package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"argspec-generator/internal/analyze"
	"argspec-generator/internal/diagnostic"
	"argspec-generator/internal/pkgmeta"
	"argspec-generator/internal/plan"
	"argspec-generator/internal/schema"
)

// isSchemaFile reports whether input names a YAML schema rather than a Go
// package pattern.
func isSchemaFile(input string) bool {
	ext := strings.ToLower(filepath.Ext(input))
	return ext == ".yaml" || ext == ".yml"
}

// loadSet reads one input: a YAML schema file or a Go package pattern.
func loadSet(ctx context.Context, input, root string) (*schema.Set, error) {
	var (
		set *schema.Set
		err error
	)

	if isSchemaFile(input) {
		set, err = schema.LoadFile(input)
	} else {
		set, err = analyze.NewAnalyzer("").LoadPackages(ctx, input)
	}

	if err != nil {
		return nil, err
	}

	if root != "" {
		set.Root = root
	}

	if diags := schema.Validate(set); diags.HasErrors() {
		return nil, fmt.Errorf("invalid schema %s: %w", input, diags.Error())
	}

	return set, nil
}

// environment snapshots metadata defaults: values derived from go.mod,
// overridden by the process environment.
func environment(modFile string, logger *slog.Logger) pkgmeta.Env {
	env := pkgmeta.FromOS()
	if modFile == "" {
		return env
	}

	mod, err := pkgmeta.FromModFile(modFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring go.mod metadata", "file", modFile, "error", err)
		}

		return env
	}

	return mod.Merge(env)
}

// compileInput loads and compiles one input, logging its diagnostics.
func compileInput(ctx context.Context, cli *CLI, input, root string, logger *slog.Logger) (*plan.Spec, error) {
	set, err := loadSet(ctx, input, root)
	if err != nil {
		return nil, err
	}

	config := plan.DefaultConfig()
	config.StrictAttributes = cli.Strict

	spec, err := plan.NewResolver(set, environment(cli.ModFile, logger), config).Resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	logDiagnostics(ctx, logger, input, spec.Diagnostics)

	return spec, nil
}

// logDiagnostics reports warnings at Warn and everything else at Debug.
func logDiagnostics(ctx context.Context, logger *slog.Logger, input string, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		level := slog.LevelDebug
		if d.Severity >= diagnostic.SeverityWarning {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, "diagnostic", "input", input, "code", d.Code, "detail", d.String())
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
