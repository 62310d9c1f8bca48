// SPDX-License-Identifier: MPL-2.0

// Package fsutil provides small filesystem-adjacent helpers shared across
// commands: human-readable byte formatting and parsing of size/duration
// strings as they appear on the command line ("100MB", "7d").
package fsutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatBytes renders a byte count using binary units (KiB = 1024 B).
// Values below 1 KiB are printed as plain bytes.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ParseSize parses a human size string such as "100MB", "1GB", "500KB" or
// "4096" into a byte count. Units are case-insensitive and binary
// (1 KB = 1024 bytes, matching the tool's display convention).
func ParseSize(s string) (uint64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var mult uint64 = 1
	switch {
	case strings.HasSuffix(str, "GB"):
		mult, str = 1024*1024*1024, str[:len(str)-2]
	case strings.HasSuffix(str, "MB"):
		mult, str = 1024*1024, str[:len(str)-2]
	case strings.HasSuffix(str, "KB"):
		mult, str = 1024, str[:len(str)-2]
	case strings.HasSuffix(str, "B"):
		str = str[:len(str)-1]
	}

	n, err := strconv.ParseUint(strings.TrimSpace(str), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return n * mult, nil
}

// ParseDuration parses a time range string such as "1h", "24h", "7d" or
// "30d" into a duration. Plain numbers are treated as seconds. Days are
// supported on top of time.ParseDuration's units because they are the
// common case for "recently modified" queries.
func ParseDuration(s string) (time.Duration, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	if strings.HasSuffix(str, "d") {
		days, err := strconv.ParseUint(strings.TrimSpace(str[:len(str)-1]), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if n, err := strconv.ParseUint(str, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}

	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// Extension returns the file extension of name, lowercased and without the
// leading dot. Files without an extension yield "".
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	// A name like "archive.tar.gz" reports "gz", matching path/filepath.Ext.
	ext := name[idx+1:]
	if strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return strings.ToLower(ext)
}
