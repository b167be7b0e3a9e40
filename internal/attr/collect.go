package attr

import (
	"strings"

	"argspec-generator/internal/common"
)

// Raw is one unparsed attribute source: tag-grammar text, pre-structured
// entries, or both (entries first).
type Raw struct {
	Text    string
	Entries Entries
	Pos     common.Pos
}

// Text wraps attribute text found at pos.
func Text(text string, pos common.Pos) Raw {
	return Raw{Text: text, Pos: pos}
}

// Structured wraps already decoded entries.
func Structured(pos common.Pos, entries ...Entry) Raw {
	return Raw{Entries: entries, Pos: pos}
}

// Collect builds the ordered attribute list of one item or member.
// The doc-derived entry comes first, explicit entries follow in declaration order.
func Collect(raws []Raw, doc []string, src Source, pos common.Pos) (Entries, error) {
	var out Entries

	if text := NormalizeDoc(doc); text != "" {
		out = append(out, Entry{Key: src.DocKey(), Value: String(text), Pos: pos})
	}

	for _, raw := range raws {
		out = append(out, raw.Entries...)

		if strings.TrimSpace(raw.Text) == "" {
			continue
		}

		parsed, err := Parse(raw.Text, raw.Pos)
		if err != nil {
			return nil, err
		}

		out = append(out, parsed...)
	}

	return out, nil
}

var docMarkers = []string{"///", "//!", "//", "/**", "/*!", "/*"}

// NormalizeDoc strips comment markers from doc lines, trims them and joins
// the non-empty ones with single spaces.
func NormalizeDoc(lines []string) string {
	parts := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)

		for _, m := range docMarkers {
			if strings.HasPrefix(line, m) {
				line = strings.TrimPrefix(line, m)
				break
			}
		}

		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimPrefix(strings.TrimSpace(line), "* ")
		line = strings.TrimSpace(line)

		if line == "" || line == "*" {
			continue
		}

		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}
