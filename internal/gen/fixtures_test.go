package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"argspec-generator/internal/plan"
	"argspec-generator/internal/schema"
)

func compile(t *testing.T, doc string) *plan.Spec {
	t.Helper()

	set, err := schema.Parse([]byte(doc))
	require.NoError(t, err)

	spec, err := plan.Compile(set, nil)
	require.NoError(t, err)

	return spec
}

func lines(invocations []Invocation) []string {
	out := make([]string, len(invocations))
	for i, in := range invocations {
		out[i] = in.String()
	}

	return out
}

const myApp = `
root: MyApp
items:
  - name: MyApp
    attrs: 'name=myapp, about="An example of argspec usage."'
    members:
      - name: debug
        type: bool
        attrs: short=d, long=debug, help='Activate debug mode'
      - name: speed
        type: float64
        attrs: short=s, long=speed, help='Set speed', default_value=42
      - name: input
        type: string
        attrs: help='Input file'
      - name: output
        type: Option<String>
        attrs: help='Output file, stdout if not present'
`

const remote = `
root: Cli
items:
  - name: Cli
    attrs: name=cli, version=1.2.0
    members:
      - {name: verbose, type: u64, attrs: short}
      - {name: cmd, type: Command, attrs: subcommand}
  - name: Command
    kind: commands
    members:
      - name: Remote
        type: RemoteArgs
  - name: RemoteArgs
    members:
      - {name: action, type: "*RemoteAction", attrs: subcommand}
  - name: RemoteAction
    kind: commands
    members:
      - name: SetUrl
        fields:
          - name: url
            type: Url
            attrs: "parse(try_from_str=url.Parse)"
      - name: Show
        fields:
          - {name: names, type: "[]string", attrs: "possible_values='origin|upstream', aliases_raw='defaultAliases'"}
          - {name: hex, type: "[]byte", attrs: "parse(try_from_os_str=parseHex)"}
imports:
  url: net/url
`
