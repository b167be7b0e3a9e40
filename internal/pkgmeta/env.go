package pkgmeta

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"golang.org/x/mod/modfile"

	"argspec-generator/internal/common"
)

// Environment keys for metadata defaults.
const (
	KeyName        = "ARGSPEC_PKG_NAME"
	KeyVersion     = "ARGSPEC_PKG_VERSION"
	KeyAuthors     = "ARGSPEC_PKG_AUTHORS"
	KeyDescription = "ARGSPEC_PKG_DESCRIPTION"
)

// Keys lists every environment key in a stable order.
var Keys = []string{KeyName, KeyVersion, KeyAuthors, KeyDescription}

// Env is an immutable snapshot of package metadata.
type Env struct {
	values map[string]string
}

// New creates an Env from explicit key/value pairs.
func New(values map[string]string) Env {
	return Env{values: maps.Clone(values)}
}

// Lookup returns the value stored for key.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Get returns the value stored for key or "".
func (e Env) Get(key string) string {
	return e.values[key]
}

// Len returns the number of keys set.
func (e Env) Len() int {
	return len(e.values)
}

// Merge returns a new Env where values from other override e.
func (e Env) Merge(other Env) Env {
	merged := maps.Clone(e.values)
	if merged == nil {
		merged = make(map[string]string, len(other.values))
	}

	maps.Copy(merged, other.values)

	return Env{values: merged}
}

// FromEnviron snapshots the metadata keys from a KEY=VALUE list such as os.Environ().
func FromEnviron(environ []string) Env {
	values := make(map[string]string)

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		for _, key := range Keys {
			if k == key {
				values[k] = v
			}
		}
	}

	return Env{values: values}
}

// FromOS snapshots the current process environment.
func FromOS() Env {
	return FromEnviron(os.Environ())
}

// FromModFile derives metadata from a go.mod file: the package name defaults
// to the last element of the module path, with any /vN suffix dropped.
func FromModFile(filename string) (Env, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Env{}, fmt.Errorf("reading %s: %w", filename, err)
	}

	return ParseModFile(filename, data)
}

// ParseModFile is FromModFile over in-memory contents.
func ParseModFile(filename string, data []byte) (Env, error) {
	mf, err := modfile.ParseLax(filename, data, nil)
	if err != nil {
		return Env{}, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if mf.Module == nil {
		return Env{}, fmt.Errorf("%s: no module directive", filename)
	}

	return New(map[string]string{KeyName: common.PkgAlias(mf.Module.Mod.Path)}), nil
}
