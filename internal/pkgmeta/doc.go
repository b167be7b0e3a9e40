// Package pkgmeta provides the ambient package metadata consulted when a
// schema does not set name, version, author or about explicitly.
//
// The metadata is an explicit read-only snapshot (Env) passed into the
// compiler; nothing reads the process environment behind its back.
package pkgmeta
