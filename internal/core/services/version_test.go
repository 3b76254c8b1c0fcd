package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajal/microns-kit/internal/adapters/driven/storage/memory"
	"github.com/cajal/microns-kit/internal/core/domain"
)

// fakeReleaseSource implements driven.ReleaseSource for testing.
type fakeReleaseSource struct {
	tag      string
	release  string
	file     string
	err      error
	tagCalls int
}

func (f *fakeReleaseSource) LatestTagVersion(context.Context, string, string) (string, error) {
	f.tagCalls++
	return f.tag, f.err
}

func (f *fakeReleaseSource) LatestReleaseVersion(context.Context, string, string) (string, error) {
	return f.release, f.err
}

func (f *fakeReleaseSource) VersionFileContent(context.Context, string, string, string, string) (string, error) {
	return f.file, f.err
}

func tagSource() domain.VersionSource {
	return domain.VersionSource{Owner: "cajal", Repo: "microns-utils", Source: domain.SourceTag}
}

func TestVersionService_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("tag source", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{tag: "v0.0.2"}, nil)

		latest, err := svc.Latest(ctx, tagSource())

		require.NoError(t, err)
		assert.Equal(t, "0.0.2", latest)
	})

	t.Run("release source", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{release: "v1.4.0"}, nil)
		src := tagSource()
		src.Source = domain.SourceRelease

		latest, err := svc.Latest(ctx, src)

		require.NoError(t, err)
		assert.Equal(t, "1.4.0", latest)
	})

	t.Run("commit source parses version file", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{file: "__version__ = \"0.0.1\"\n"}, nil)
		src := domain.VersionSource{
			Owner: "cajal", Repo: "microns-utils", Branch: "main",
			Source: domain.SourceCommit, VersionFile: "microns_utils/version.py",
		}

		latest, err := svc.Latest(ctx, src)

		require.NoError(t, err)
		assert.Equal(t, "0.0.1", latest)
	})

	t.Run("network failure warns and returns empty", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{err: errors.New("dial tcp: timeout")}, nil)

		latest, err := svc.Latest(ctx, tagSource())

		require.NoError(t, err)
		assert.Empty(t, latest)
	})

	t.Run("unparseable version warns and returns empty", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{tag: "nightly-build"}, nil)

		latest, err := svc.Latest(ctx, tagSource())

		require.NoError(t, err)
		assert.Empty(t, latest)
	})

	t.Run("invalid source is an error", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{}, nil)

		_, err := svc.Latest(ctx, domain.VersionSource{Owner: "cajal"})

		assert.Error(t, err)
	})

	t.Run("serves from cache without hitting the source", func(t *testing.T) {
		source := &fakeReleaseSource{tag: "v0.0.2"}
		svc := NewVersionService(source, memory.NewVersionCache())

		_, err := svc.Latest(ctx, tagSource())
		require.NoError(t, err)
		_, err = svc.Latest(ctx, tagSource())
		require.NoError(t, err)

		assert.Equal(t, 1, source.tagCalls)
	})

	t.Run("expired cache entries are refreshed", func(t *testing.T) {
		source := &fakeReleaseSource{tag: "v0.0.2"}
		cache := memory.NewVersionCache()
		svc := NewVersionService(source, cache)
		svc.SetCacheTTL(time.Nanosecond)

		_, err := svc.Latest(ctx, tagSource())
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, err = svc.Latest(ctx, tagSource())
		require.NoError(t, err)

		assert.Equal(t, 2, source.tagCalls)
	})
}

func writeVersionFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestVersionService_Installed(t *testing.T) {
	t.Run("prefers build info", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{}, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Deps: []*debug.Module{
					{Path: "github.com/cajal/microns-utils", Version: "v0.0.3"},
				},
			}, true
		}

		assert.Equal(t, "0.0.3", svc.Installed("microns-utils", nil))
	})

	t.Run("falls back to version file on the search path", func(t *testing.T) {
		root := t.TempDir()
		pkgDir := filepath.Join(root, "microns-utils")
		writeVersionFile(t, pkgDir, "version.py", "__version__ = \"0.0.1\"\n")

		svc := NewVersionService(&fakeReleaseSource{}, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		assert.Equal(t, "0.0.1", svc.Installed("microns-utils", []string{pkgDir}))
	})

	t.Run("ignores search path entries for other packages", func(t *testing.T) {
		root := t.TempDir()
		otherDir := filepath.Join(root, "other-pkg")
		writeVersionFile(t, otherDir, "version.py", "__version__ = \"9.9.9\"\n")

		svc := NewVersionService(&fakeReleaseSource{}, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		assert.Empty(t, svc.Installed("microns-utils", []string{otherDir}))
	})

	t.Run("multiple version files resolve to empty", func(t *testing.T) {
		root := t.TempDir()
		pkgDir := filepath.Join(root, "microns-utils")
		writeVersionFile(t, filepath.Join(pkgDir, "a"), "version.py", "__version__ = \"0.0.1\"\n")
		writeVersionFile(t, filepath.Join(pkgDir, "b"), "version.py", "__version__ = \"0.0.2\"\n")

		svc := NewVersionService(&fakeReleaseSource{}, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		assert.Empty(t, svc.Installed("microns-utils", []string{pkgDir}))
	})

	t.Run("nothing found resolves to empty", func(t *testing.T) {
		svc := NewVersionService(&fakeReleaseSource{}, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		assert.Empty(t, svc.Installed("microns-utils", nil))
	})
}

func TestVersionService_Check(t *testing.T) {
	ctx := context.Background()

	newService := func(source *fakeReleaseSource, installed string) *VersionService {
		svc := NewVersionService(source, nil)
		svc.readBuildInfo = func() (*debug.BuildInfo, bool) {
			if installed == "" {
				return nil, false
			}
			return &debug.BuildInfo{
				Deps: []*debug.Module{
					{Path: "github.com/cajal/microns-utils", Version: "v" + installed},
				},
			}, true
		}
		return svc
	}

	t.Run("flags outdated install", func(t *testing.T) {
		svc := newService(&fakeReleaseSource{tag: "v0.0.2"}, "0.0.1")

		report, err := svc.Check(ctx, "microns-utils", nil, tagSource())

		require.NoError(t, err)
		assert.Equal(t, "0.0.1", report.Installed)
		assert.Equal(t, "0.0.2", report.Latest)
		assert.True(t, report.Outdated)
	})

	t.Run("up to date install", func(t *testing.T) {
		svc := newService(&fakeReleaseSource{tag: "v0.0.2"}, "0.0.2")

		report, err := svc.Check(ctx, "microns-utils", nil, tagSource())

		require.NoError(t, err)
		assert.False(t, report.Outdated)
	})

	t.Run("unknown installed version is not outdated", func(t *testing.T) {
		svc := newService(&fakeReleaseSource{tag: "v0.0.2"}, "")

		report, err := svc.Check(ctx, "microns-utils", nil, tagSource())

		require.NoError(t, err)
		assert.Empty(t, report.Installed)
		assert.False(t, report.Outdated)
	})

	t.Run("unreachable GitHub is not outdated", func(t *testing.T) {
		svc := newService(&fakeReleaseSource{err: errors.New("offline")}, "0.0.1")

		report, err := svc.Check(ctx, "microns-utils", nil, tagSource())

		require.NoError(t, err)
		assert.Empty(t, report.Latest)
		assert.False(t, report.Outdated)
	})
}
