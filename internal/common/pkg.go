package common

import (
	"path"
	"strconv"
	"strings"
)

// PkgAlias returns the name a package is referred to by in generated code:
// the last element of pkgPath, skipping a major version suffix, so both
// "example.com/ordering" and "example.com/ordering/v2" give "ordering".
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) && path.Dir(pkgPath) != "." {
		return path.Base(path.Dir(pkgPath))
	}

	return base
}

func isMajorVersion(elem string) bool {
	n, ok := strings.CutPrefix(elem, "v")
	if !ok {
		return false
	}

	v, err := strconv.Atoi(n)

	return err == nil && v >= 2
}
