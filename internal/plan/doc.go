// Package plan provides the compilation pipeline that turns a schema.Set
// into a resolved Spec consumed by code generation.
//
// Compilation pipeline:
//  1. Collect attributes per item and member (doc text first, explicit
//     entries after, last write wins)
//  2. Classify each field type into a Cardinality
//  3. Resolve the value parser of each argument
//  4. Expand subcommand carriers into nested commands, flattening where
//     asked, with cycle detection over the items in progress
//  5. Collect diagnostics (unknown attribute keys with suggestions)
//
// Compilation is all or nothing: the first failure is returned as a
// *CompileError and no Spec is produced.
package plan
