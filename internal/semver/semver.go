// Package semver parses and compares semantic version strings.
//
// Parsing accepts both bare versions ("1.2.3") and the contents of a version
// declaration file containing a single assignment such as
//
//	__version__ = "1.2.3"
//
// which is how the research packages publish their versions.
package semver

import (
	"regexp"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

// pattern is the canonical semver regular expression from semver.org.
var pattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)

// Parse extracts a semantic version from text. The text may be a bare version
// string or a version file body with one assignment per the package
// convention. Returns "" when no valid semver is present.
func Parse(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if v := parseLine(line); v != "" {
			return v
		}
	}
	return ""
}

func parseLine(line string) string {
	// Reduce "name = value" to the value.
	if i := strings.Index(line, "="); i >= 0 {
		line = line[i+1:]
	}
	line = strings.Trim(line, ` "'`)
	line = strings.TrimPrefix(line, "v")
	if pattern.MatchString(line) {
		return line
	}
	return ""
}

// IsValid reports whether v is a bare semantic version.
func IsValid(v string) bool {
	return pattern.MatchString(strings.TrimPrefix(v, "v"))
}

// Compare returns -1, 0, or +1 depending on whether a is older than, equal
// to, or newer than b. Invalid versions sort before valid ones.
func Compare(a, b string) int {
	return xsemver.Compare(canonical(a), canonical(b))
}

// IsOlder reports whether installed is strictly older than latest.
// Returns false when either version is empty or invalid.
func IsOlder(installed, latest string) bool {
	if !IsValid(installed) || !IsValid(latest) {
		return false
	}
	return Compare(installed, latest) < 0
}

// canonical prefixes "v" as required by golang.org/x/mod/semver.
func canonical(v string) string {
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
