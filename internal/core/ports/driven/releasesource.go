package driven

import "context"

// ReleaseSource resolves published version information from a code host.
// All methods return the raw text as published; semver validation happens in
// the version service.
type ReleaseSource interface {
	// LatestTagVersion returns the name of the most recent tag.
	LatestTagVersion(ctx context.Context, owner, repo string) (string, error)

	// LatestReleaseVersion returns the tag name of the latest release.
	LatestReleaseVersion(ctx context.Context, owner, repo string) (string, error)

	// VersionFileContent returns the contents of a version file at the tip of
	// the given branch.
	VersionFileContent(ctx context.Context, owner, repo, branch, path string) (string, error)
}
