package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name a package is usually imported under: the last
// element of its path, skipping a /vN major-version element and dropping a
// gopkg.in style ".vN" suffix. "" stays "".
func PkgAlias(importPath string) string {
	if importPath == "" {
		return ""
	}

	base := path.Base(importPath)
	if isMajorVersion(base) {
		if parent := path.Dir(importPath); parent != "." && parent != "/" {
			base = path.Base(parent)
		}
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	return base
}

func isMajorVersion(s string) bool {
	return len(s) > 1 && s[0] == 'v' && strings.Trim(s[1:], "0123456789") == ""
}
