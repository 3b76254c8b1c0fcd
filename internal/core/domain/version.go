package domain

import "fmt"

// VersionSourceKind selects how the latest version of a package is resolved
// from GitHub metadata.
type VersionSourceKind string

const (
	// SourceCommit reads a version file from the tip of a branch.
	SourceCommit VersionSourceKind = "commit"

	// SourceTag uses the most recent tag.
	SourceTag VersionSourceKind = "tag"

	// SourceRelease uses the tag of the latest release.
	SourceRelease VersionSourceKind = "release"
)

// ParseVersionSourceKind parses a user-supplied source kind string.
func ParseVersionSourceKind(s string) (VersionSourceKind, error) {
	switch VersionSourceKind(s) {
	case SourceCommit, SourceTag, SourceRelease:
		return VersionSourceKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q (options: commit, tag, release)", ErrUnsupportedSource, s)
	}
}

// VersionSource describes where the latest version of a package is published
// on GitHub.
type VersionSource struct {
	// Owner is the repository owner.
	Owner string

	// Repo is the repository name.
	Repo string

	// Branch is the branch to read from. Only used when Source is SourceCommit.
	Branch string

	// Source selects the lookup strategy.
	Source VersionSourceKind

	// VersionFile is the path of the version file from the repository root.
	// Required when Source is SourceCommit.
	VersionFile string
}

// Validate checks that the source is complete enough to query.
func (s VersionSource) Validate() error {
	if s.Owner == "" || s.Repo == "" {
		return fmt.Errorf("%w: owner and repo are required", ErrInvalidInput)
	}
	if _, err := ParseVersionSourceKind(string(s.Source)); err != nil {
		return err
	}
	if s.Source == SourceCommit && s.VersionFile == "" {
		return fmt.Errorf("%w: version file path is required for commit source", ErrInvalidInput)
	}
	return nil
}

// CacheKey returns a stable key for caching latest-version lookups.
func (s VersionSource) CacheKey() string {
	return fmt.Sprintf("%s/%s@%s", s.Owner, s.Repo, s.Source)
}

// VersionReport is the outcome of an installed-vs-latest version check.
type VersionReport struct {
	// Package is the package that was checked.
	Package string

	// Installed is the locally resolved version, or "" if none was found.
	Installed string

	// Latest is the version resolved from GitHub, or "" if unreachable.
	Latest string

	// Outdated is true when both versions resolved and Installed is older.
	Outdated bool
}
