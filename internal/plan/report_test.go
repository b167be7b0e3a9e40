package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argspec-generator/internal/diagnostic"
)

func TestGenerateReport(t *testing.T) {
	spec := mustCompile(t, cookie)

	report := GenerateReport(spec)
	require.Len(t, report.Commands, 1)

	c := report.Commands[0]
	assert.Equal(t, "make-cookie", c.Path)
	assert.Equal(t, "MakeCookie", c.Item)
	assert.Equal(t, "cmd -> Command (flatten)", c.Link)
	require.Len(t, c.Args, 3)
	assert.Equal(t, ArgReport{
		Name:        "acorns",
		Member:      "acorns",
		Cardinality: "required",
		Parser:      "try_from_str",
		Required:    true,
		Flattened:   "Pound",
	}, c.Args[1])
}

func TestFormatReport(t *testing.T) {
	spec := mustCompile(t, nested)
	spec.Diagnostics.AddWarning("unknown_attribute", `unknown attribute "x"`, diagnostic.Location{Item: "Cli"})

	text := FormatReport(GenerateReport(spec))

	assert.Contains(t, text, "===  remote (RemoteArgs) ===")
	assert.Contains(t, text, "Subcommands from: action -> RemoteAction (optional)")
	assert.Contains(t, text, "  url <- url: required, try_from_str, required\n")
	assert.Contains(t, text, "Warnings:\n")
	assert.Contains(t, text, `unknown attribute "x"`)
}
