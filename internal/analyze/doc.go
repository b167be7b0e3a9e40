// Package analyze turns annotated Go declarations into a schema.Set.
//
// It loads packages with golang.org/x/tools/go/packages and reads both the
// syntax (doc comments, directives, struct tags) and go/types information
// (field types, imports).
//
// Conventions:
//   - every exported struct type becomes an options item
//   - a "//argspec:commands" directive turns a struct into a command set;
//     each exported field is one variant
//   - "//argspec:command" marks an options item explicitly; either directive
//     may carry item attributes after the name ("//argspec:command name=git")
//   - "//argspec:root" selects the root item; otherwise the first item with
//     a directive is the root
//   - field attributes live in the `arg:"..."` struct tag; `arg:"-"` skips
package analyze
