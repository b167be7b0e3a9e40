package gen

import (
	"errors"
	"fmt"
	"strings"

	"argspec-generator/internal/common"
	"argspec-generator/internal/plan"
)

// Format selects a rendering of the invocation list.
type Format int

const (
	// FormatGo renders Go source against the argbuilder contract.
	FormatGo Format = iota
	// FormatJSON renders the invocation list as JSON.
	FormatJSON
	// FormatYAML renders the invocation list as YAML.
	FormatYAML
)

// String returns the format name used on the command line.
func (f Format) String() string {
	switch f {
	case FormatGo:
		return "go"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return common.UnknownStr
	}
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "go":
		return FormatGo, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want go, json or yaml)", s)
	}
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// FuncName is the exported function building the root command.
	FuncName string
	// HelperPrefix is inserted into nested builder names (build<Prefix><Path>)
	// so several generated files can share one package.
	HelperPrefix string
	// BuilderImport is the import path of the builder contract.
	BuilderImport string
	// FileBase is the file name without extension.
	FileBase string
	// Formats lists the renderings to produce.
	Formats []Format
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:   "cli",
		OutputDir:     "./generated",
		FuncName:      "BuildCommand",
		BuilderImport: "argspec-generator/argbuilder",
		FileBase:      "argspec",
		Formats:       []Format{FormatGo},
	}
}

// Generator renders compiled specs.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents one rendered output file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "argspec.go").
	Filename string
	// Content is the rendered content. Go output is gofmt-ed.
	Content []byte
}

// Generate emits the invocation list of spec and renders it in every
// configured format.
func (g *Generator) Generate(spec *plan.Spec) ([]GeneratedFile, error) {
	if spec == nil || spec.Root == nil {
		return nil, errors.New("nothing to generate: spec has no root command")
	}

	invocations, err := Emit(spec)
	if err != nil {
		return nil, fmt.Errorf("emitting invocations: %w", err)
	}

	formats := g.config.Formats
	if len(formats) == 0 {
		formats = []Format{FormatGo}
	}

	files := make([]GeneratedFile, 0, len(formats))

	for _, f := range formats {
		name := g.config.FileBase + f.Ext()

		var content []byte

		switch f {
		case FormatGo:
			content, err = g.renderGo(name, spec.Imports, invocations)
		case FormatJSON:
			content, err = RenderJSON(spec.Root.Name, invocations)
		case FormatYAML:
			content, err = RenderYAML(spec.Root.Name, invocations)
		default:
			err = fmt.Errorf("unsupported format %d", int(f))
		}

		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}

		files = append(files, GeneratedFile{Filename: name, Content: content})
	}

	return files, nil
}
