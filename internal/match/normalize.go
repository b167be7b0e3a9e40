package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lowercases an identifier and drops word separators, so
// "DryRun", "dry_run" and "dry-run" compare equal.
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// KebabCase converts a Go or Rust style identifier into the lower kebab-case
// form used for argument and subcommand names.
// Examples:
//   - "DryRun" -> "dry-run"
//   - "dry_run" -> "dry-run"
//   - "HTTPPort" -> "http-port"
func KebabCase(s string) string {
	return strings.Join(TokenizeIdent(s), "-")
}

// TokenizeIdent splits an identifier into lowercase words.
func TokenizeIdent(s string) []string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return words
}

// splitWords splits on separators and on case changes. An upper-case run
// keeps together as an acronym, except for its last letter when a
// lower-case letter follows ("XMLParser" -> "XML", "Parser").
func splitWords(s string) []string {
	var words []string

	runes := []rune(s)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && wordBoundary(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return words
}

func wordBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
