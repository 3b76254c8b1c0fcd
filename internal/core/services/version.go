package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/core/ports/driven"
	"github.com/cajal/microns-kit/internal/fsutil"
	"github.com/cajal/microns-kit/internal/logger"
	"github.com/cajal/microns-kit/internal/semver"
)

// DefaultCacheTTL is how long cached latest-version lookups stay fresh.
const DefaultCacheTTL = 24 * time.Hour

// versionFileNames are the file names recognized as version declarations.
var versionFileNames = []string{"version.py", "VERSION"}

// VersionService resolves installed and published package versions.
type VersionService struct {
	source driven.ReleaseSource
	cache  driven.VersionCache
	ttl    time.Duration

	// readBuildInfo is swapped in tests.
	readBuildInfo func() (*debug.BuildInfo, bool)
}

// NewVersionService creates a version service. The cache may be nil, in
// which case every lookup goes to the release source.
func NewVersionService(source driven.ReleaseSource, cache driven.VersionCache) *VersionService {
	return &VersionService{
		source:        source,
		cache:         cache,
		ttl:           DefaultCacheTTL,
		readBuildInfo: debug.ReadBuildInfo,
	}
}

// SetCacheTTL overrides the cache freshness window.
func (s *VersionService) SetCacheTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Latest resolves the newest published version for src. Network failures are
// reported as a warning and an empty version, not an error: callers use the
// result for advisory checks and must keep working offline.
func (s *VersionService) Latest(ctx context.Context, src domain.VersionSource) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}

	if s.cache != nil {
		if v, ok, err := s.cache.Get(ctx, src.CacheKey(), s.ttl); err == nil && ok {
			logger.Debug("latest version for %s served from cache: %s", src.CacheKey(), v)
			return v, nil
		}
	}

	raw, err := s.fetchLatest(ctx, src)
	if err != nil {
		logger.Warn("failed to reach GitHub during check for latest version: %v", err)
		return "", nil
	}

	latest := semver.Parse(raw)
	if latest == "" {
		logger.Warn("GitHub returned an unparseable version for %s/%s: %q", src.Owner, src.Repo, raw)
		return "", nil
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, src.CacheKey(), latest); err != nil {
			logger.Debug("failed to cache latest version: %v", err)
		}
	}
	return latest, nil
}

func (s *VersionService) fetchLatest(ctx context.Context, src domain.VersionSource) (string, error) {
	switch src.Source {
	case domain.SourceCommit:
		return s.source.VersionFileContent(ctx, src.Owner, src.Repo, src.Branch, src.VersionFile)
	case domain.SourceTag:
		return s.source.LatestTagVersion(ctx, src.Owner, src.Repo)
	case domain.SourceRelease:
		return s.source.LatestReleaseVersion(ctx, src.Owner, src.Repo)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, src.Source)
	}
}

// Installed resolves the locally installed version of pkg with a three-tier
// fallback: the binary's Go build info, then a version file discovered under
// searchPath entries whose tail matches the package name, then "".
func (s *VersionService) Installed(pkg string, searchPath []string) string {
	if v := s.fromBuildInfo(pkg); v != "" {
		return v
	}
	if v := s.fromSearchPath(pkg, searchPath); v != "" {
		return v
	}
	return ""
}

// fromBuildInfo matches pkg against the module paths in the running binary's
// build info.
func (s *VersionService) fromBuildInfo(pkg string) string {
	info, ok := s.readBuildInfo()
	if !ok {
		return ""
	}

	modules := append([]*debug.Module{&info.Main}, info.Deps...)
	for _, mod := range modules {
		if mod == nil || mod.Path == "" {
			continue
		}
		if mod.Path == pkg || strings.HasSuffix(mod.Path, "/"+pkg) {
			if v := semver.Parse(strings.TrimPrefix(mod.Version, "v")); v != "" {
				return v
			}
		}
	}
	return ""
}

// fromSearchPath looks for a version file under the search path entries
// whose last element matches the package name. Zero or multiple matches both
// resolve to "" with a warning.
func (s *VersionService) fromSearchPath(pkg string, searchPath []string) string {
	var files []string
	for _, dir := range searchPath {
		if filepath.Base(filepath.Clean(dir)) != pkg {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		for _, name := range versionFileNames {
			matches, err := fsutil.FindAll(name, dir)
			if err != nil {
				logger.Debug("version file search in %s failed: %v", dir, err)
				continue
			}
			files = append(files, matches...)
		}
	}

	switch len(files) {
	case 0:
		logger.Warn("no version file found for package %s", pkg)
		return ""
	case 1:
		data, err := os.ReadFile(files[0])
		if err != nil {
			logger.Warn("reading version file %s: %v", files[0], err)
			return ""
		}
		return semver.Parse(string(data))
	default:
		logger.Warn("multiple version files found for package %s", pkg)
		return ""
	}
}

// Check resolves the installed and latest versions of pkg and warns when an
// upgrade is available.
func (s *VersionService) Check(ctx context.Context, pkg string, searchPath []string, src domain.VersionSource) (domain.VersionReport, error) {
	report := domain.VersionReport{Package: pkg}

	report.Installed = s.Installed(pkg, searchPath)

	latest, err := s.Latest(ctx, src)
	if err != nil {
		return report, err
	}
	report.Latest = latest

	if semver.IsOlder(report.Installed, report.Latest) {
		report.Outdated = true
		logger.Warn("you are using %s version %s, which is not the latest version. "+
			"Version %s is available. Upgrade to avoid conflicts with the database.",
			pkg, report.Installed, report.Latest)
	}
	return report, nil
}
