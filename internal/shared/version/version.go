// Package version compares release strings such as "1.0.0-beta.10".
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is the release this binary ships. Overridden at build time with
// -ldflags "-X github.com/buildingai/cozepkg/internal/shared/version.Current=...".
var Current = "1.0.0-beta.10"

// Normalize adds the "v" prefix semver expects.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// IsValid reports whether v parses as semantic version.
func IsValid(v string) bool {
	return semver.IsValid(Normalize(v))
}

// Compare returns -1, 0 or +1. Invalid versions sort before valid ones.
func Compare(a, b string) int {
	return semver.Compare(Normalize(a), Normalize(b))
}

// Latest returns the highest valid version in vs, or "" when none is valid.
func Latest(vs []string) string {
	latest := ""
	for _, v := range vs {
		if !IsValid(v) {
			continue
		}
		if latest == "" || Compare(v, latest) > 0 {
			latest = v
		}
	}
	return latest
}
