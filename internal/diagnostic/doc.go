// Package diagnostic provides structured warnings and errors for the
// argspec generator.
//
// Key capabilities:
//   - Schema validation errors located by item, member and position
//   - Unknown attribute warnings with "did you mean" suggestions
//   - Human-readable rendering of every collected message
package diagnostic
