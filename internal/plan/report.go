package plan

import (
	"fmt"
	"strings"
)

// Report summarizes a compiled Spec for human review.
type Report struct {
	Commands []CommandReport
	Warnings []string
}

// CommandReport describes one command of the tree.
type CommandReport struct {
	// Path is the space separated command path ("git remote add").
	Path        string
	Item        string
	Args        []ArgReport
	Subcommands int
	Link        string
}

// ArgReport describes one resolved argument.
type ArgReport struct {
	Name        string
	Member      string
	Cardinality string
	Parser      string
	Required    bool
	Flattened   string
}

// GenerateReport creates a report from a compiled Spec.
func GenerateReport(spec *Spec) *Report {
	report := &Report{}

	spec.Root.Walk(func(path []string, cmd *Command) {
		cr := CommandReport{
			Path:        strings.Join(path, " "),
			Item:        cmd.Item,
			Subcommands: len(cmd.Subcommands),
		}

		if cmd.Link != nil {
			cr.Link = describeLink(cmd.Link)
		}

		for _, a := range cmd.Args {
			parser := a.Parser.Kind.String()
			if a.Parser.Func != "" {
				parser += "=" + a.Parser.Func
			}

			cr.Args = append(cr.Args, ArgReport{
				Name:        a.Name,
				Member:      a.Member,
				Cardinality: a.Cardinality.String(),
				Parser:      parser,
				Required:    a.Required(),
				Flattened:   a.FlattenedFrom,
			})
		}

		report.Commands = append(report.Commands, cr)
	})

	for _, w := range spec.Diagnostics.Warnings {
		report.Warnings = append(report.Warnings, w.String())
	}

	return report
}

func describeLink(l *SubcommandLink) string {
	var mods []string
	if l.Optional {
		mods = append(mods, "optional")
	}

	if l.Flatten {
		mods = append(mods, "flatten")
	}

	desc := l.Target
	if l.Carrier != "" {
		desc = l.Carrier + " -> " + desc
	}

	if len(mods) > 0 {
		desc += " (" + strings.Join(mods, ", ") + ")"
	}

	return desc
}

// FormatReport formats a report as human-readable text.
func FormatReport(report *Report) string {
	var b strings.Builder

	for _, c := range report.Commands {
		fmt.Fprintf(&b, "\n=== %s (%s) ===\n", c.Path, c.Item)
		fmt.Fprintf(&b, "Args: %d, Subcommands: %d\n", len(c.Args), c.Subcommands)

		if c.Link != "" {
			fmt.Fprintf(&b, "Subcommands from: %s\n", c.Link)
		}

		for _, a := range c.Args {
			req := ""
			if a.Required {
				req = ", required"
			}

			from := ""
			if a.Flattened != "" {
				from = " [from " + a.Flattened + "]"
			}

			fmt.Fprintf(&b, "  %s <- %s: %s, %s%s%s\n", a.Name, a.Member, a.Cardinality, a.Parser, req, from)
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")

		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "  ⚠ %s\n", w)
		}
	}

	return b.String()
}
