// Package github resolves published package versions from GitHub metadata:
// the most recent tag, the latest release, or a version file at the tip of a
// branch. It wraps go-github with rate limiting and typed errors. A token is
// optional; unauthenticated requests work for public repositories at a lower
// rate limit.
package github
