// Package gen lowers a compiled plan.Spec into an ordered list of builder
// invocations and renders that list.
//
// Emission walks commands and arguments in declaration order, so the output
// is deterministic and help text keeps its declared ordering.
//
// Renderers:
//   - Go source calling the argbuilder contract (text/template + go/format)
//   - JSON (goccy/go-json)
//   - YAML (gopkg.in/yaml.v3)
package gen
