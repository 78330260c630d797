// Package sysfs reads kernel pseudo-files with a uniform best-effort policy:
// a missing file, a permission error, or an unparsable value yields the
// caller's default instead of an error. Hardware exposure points vary across
// board revisions and kernel versions, so absence is an expected outcome.
package sysfs

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// FirstExisting returns the first candidate path that exists on the
// filesystem. Candidate order encodes priority: more specific identifiers
// first, generic fallbacks last. No caching; hardware topology does not
// change at runtime, so callers resolve once per cold lookup.
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, true
		}
	}
	return "", false
}

// Exists reports whether a single path is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadString returns the trimmed file content, or def on any error.
func ReadString(path, def string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return def
	}
	return s
}

// ReadUint64 parses the file as a decimal unsigned integer, or returns def.
func ReadUint64(path string, def uint64) uint64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		slog.Debug("unparsable pseudo-file", "path", path, "err", err)
		return def
	}
	return v
}

// ReadInt64 parses the file as a decimal signed integer, or returns def.
func ReadInt64(path string, def int64) int64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		slog.Debug("unparsable pseudo-file", "path", path, "err", err)
		return def
	}
	return v
}

// ReadMilli reads a millidegree/millivolt style value and scales it to
// whole units (e.g. 45500 -> 45.5).
func ReadMilli(path string, def float64) float64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		slog.Debug("unparsable pseudo-file", "path", path, "err", err)
		return def
	}
	return float64(v) / 1000.0
}

// ReadDeviceTreeString reads a device-tree property, which is NUL-terminated
// rather than newline-terminated.
func ReadDeviceTreeString(path, def string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	s := strings.TrimSpace(strings.Trim(string(b), "\x00"))
	if s == "" {
		return def
	}
	return s
}
