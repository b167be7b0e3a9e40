// Package match provides identifier normalization, Levenshtein distance and
// nearest-name suggestions.
//
// Key functions:
//   - KebabCase: turns member identifiers into argument and subcommand names
//   - NormalizeIdent: case- and separator-insensitive identifier form
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest known name for "did you mean" diagnostics
package match
