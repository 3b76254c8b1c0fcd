// Package fsutil contains filesystem path and timestamp helpers used by the
// research pipelines: locating files by name, validating paths, rendering
// modification times in a timezone, and renaming files with a timestamp
// appended before the extension.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/logger"
)

// FindAll walks root and returns every path whose base name equals name.
// The result is sorted; it is empty (not nil) when nothing matches.
func FindAll(name, root string) ([]string, error) {
	matches := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Validate cleans path, resolves it to an absolute path, and verifies that it
// exists on disk.
func Validate(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, abs)
		}
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	return abs, nil
}

// ConvertTimezone re-renders ts from one IANA timezone to another.
// A timestamp that already carries a location is reinterpreted in the source
// zone first, mirroring how naive timestamps are localized.
func ConvertTimezone(ts time.Time, from, to string) (time.Time, error) {
	src, err := time.LoadLocation(from)
	if err != nil {
		return time.Time{}, fmt.Errorf("load source timezone %q: %w", from, err)
	}
	dst, err := time.LoadLocation(to)
	if err != nil {
		return time.Time{}, fmt.Errorf("load destination timezone %q: %w", to, err)
	}

	// Strip the incoming location, keeping the wall-clock fields.
	localized := time.Date(ts.Year(), ts.Month(), ts.Day(),
		ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), src)
	return localized.In(dst), nil
}

// ModTime returns the modification time of the file at path rendered in the
// given IANA timezone.
func ModTime(path, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.ModTime().In(loc), nil
}

// DefaultStampSeparator separates the file stem from the appended timestamp.
const DefaultStampSeparator = "__"

// DefaultStampLayout is the timestamp layout used when none is given.
const DefaultStampLayout = "2006-01-02T15-04-05"

// StampOptions controls how AppendTimestamp renames a file.
type StampOptions struct {
	// Separator goes between the file stem and the timestamp.
	// Defaults to DefaultStampSeparator.
	Separator string

	// Layout is the time.Format layout for the timestamp.
	// Defaults to DefaultStampLayout.
	Layout string

	// Suffix replaces the file extension when non-empty, including the dot.
	Suffix string
}

// AppendTimestamp renames the file at path so the timestamp sits between the
// stem and the extension, e.g. scan.csv -> scan__2024-01-02T10-30-00.csv.
// Returns the new path.
func AppendTimestamp(path string, ts time.Time, opts StampOptions) (string, error) {
	if opts.Separator == "" {
		opts.Separator = DefaultStampSeparator
	}
	if opts.Layout == "" {
		opts.Layout = DefaultStampLayout
	}

	abs, err := Validate(path)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(abs)
	if opts.Suffix != "" {
		ext = opts.Suffix
	}
	stem := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	renamed := filepath.Join(filepath.Dir(abs),
		stem+opts.Separator+ts.Format(opts.Layout)+ext)

	if err := os.Rename(abs, renamed); err != nil {
		return "", fmt.Errorf("rename %s: %w", abs, err)
	}
	logger.Info("file renamed: %s", renamed)
	return renamed, nil
}
