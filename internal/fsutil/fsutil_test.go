package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajal/microns-kit/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
}

func TestFindAll(t *testing.T) {
	t.Run("finds nested matches sorted", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "b", "version.py"))
		writeFile(t, filepath.Join(root, "a", "deep", "version.py"))
		writeFile(t, filepath.Join(root, "a", "other.py"))

		matches, err := FindAll("version.py", root)

		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, filepath.Join(root, "a", "deep", "version.py"), matches[0])
		assert.Equal(t, filepath.Join(root, "b", "version.py"), matches[1])
	})

	t.Run("no matches returns empty slice", func(t *testing.T) {
		matches, err := FindAll("missing.txt", t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, matches)
		assert.NotNil(t, matches)
	})

	t.Run("missing root errors", func(t *testing.T) {
		_, err := FindAll("x", filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("existing file resolves to absolute path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path)

		abs, err := Validate(path)

		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(abs))
	})

	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		_, err := Validate(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestConvertTimezone(t *testing.T) {
	t.Run("utc to central", func(t *testing.T) {
		// 2024-01-15 is outside US daylight saving (CST, UTC-6).
		ts := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

		got, err := ConvertTimezone(ts, "UTC", "America/Chicago")

		require.NoError(t, err)
		assert.Equal(t, 6, got.Hour())
		assert.Equal(t, ts.Unix(), got.Unix())
	})

	t.Run("naive wall clock interpreted in source zone", func(t *testing.T) {
		// The incoming location is ignored; wall-clock fields are localized.
		ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))

		got, err := ConvertTimezone(ts, "America/New_York", "UTC")

		require.NoError(t, err)
		// 09:00 EDT (UTC-4) -> 13:00 UTC.
		assert.Equal(t, 13, got.Hour())
	})

	t.Run("bad zone errors", func(t *testing.T) {
		_, err := ConvertTimezone(time.Now(), "Not/AZone", "UTC")
		assert.Error(t, err)
	})
}

func TestModTime(t *testing.T) {
	t.Run("returns mtime in requested zone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, path)

		got, err := ModTime(path, "America/Chicago")

		require.NoError(t, err)
		assert.Equal(t, "America/Chicago", got.Location().String())
		assert.WithinDuration(t, time.Now(), got, time.Minute)
	})

	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		_, err := ModTime(filepath.Join(t.TempDir(), "missing"), "UTC")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAppendTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	t.Run("inserts stamp before extension", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "scan.csv")
		writeFile(t, path)

		renamed, err := AppendTimestamp(path, ts, StampOptions{})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "scan__2024-03-01T10-30-00.csv"), renamed)
		assert.FileExists(t, renamed)
		assert.NoFileExists(t, path)
	})

	t.Run("custom separator and suffix", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "scan.csv")
		writeFile(t, path)

		renamed, err := AppendTimestamp(path, ts, StampOptions{
			Separator: "-",
			Layout:    "20060102",
			Suffix:    ".bak",
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "scan-20240301.bak"), renamed)
	})

	t.Run("missing file returns ErrNotFound", func(t *testing.T) {
		_, err := AppendTimestamp(filepath.Join(t.TempDir(), "missing.csv"), ts, StampOptions{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
