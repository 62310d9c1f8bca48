// SPDX-License-Identifier: MPL-2.0

// Package scan walks directory trees and filters entries down to the flat
// sequence of regular files the rest of the tool operates on. The skip
// rules (hidden entries, noise directories) and the extension allow-list
// live here because every command shares them.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ftools-cli/pkg/fsutil"
)

// ErrNotADirectory is returned by Walk when the root path exists but is not
// a directory.
var ErrNotADirectory = errors.New("not a directory")

type (
	// FileRecord is a point-in-time observation of a regular file. The size
	// is a snapshot taken during traversal and is intentionally never
	// re-checked afterwards; a file that changes between traversal and a
	// later read is an accepted race.
	FileRecord struct {
		Path string
		Size uint64
	}

	// Options controls which files a Walk yields.
	Options struct {
		// MinSize excludes files smaller than this many bytes.
		MinSize uint64
		// Extensions is an allow-list of lowercase extensions (no dot).
		// Empty means "all extensions". Files without an extension never
		// match a non-empty allow-list.
		Extensions []string
		// IncludeHidden keeps entries whose name starts with a dot.
		IncludeHidden bool
	}

	// Result carries the files found in traversal order plus the non-fatal
	// per-entry failures encountered along the way. A tree with permission
	// errors still yields everything that could be read; the failures stay
	// observable instead of being silently dropped.
	Result struct {
		Files    []FileRecord
		Failures []error
	}
)

// noiseDirs are directory names that never contain user-interesting files:
// VCS metadata, dependency caches, and build output.
var noiseDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".svn":         {},
	".hg":          {},
	"__pycache__":  {},
	".cache":       {},
	"target":       {},
	".idea":        {},
	".vscode":      {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
}

// IsNoiseDir reports whether name is on the fixed noise-directory deny-list.
func IsNoiseDir(name string) bool {
	_, ok := noiseDirs[name]
	return ok
}

// ShouldSkip reports whether an entry with the given base name should be
// excluded from traversal: hidden entries (unless includeHidden) and, for
// directories, the noise deny-list.
func ShouldSkip(name string, isDir, includeHidden bool) bool {
	if !includeHidden && strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	if isDir && IsNoiseDir(name) {
		return true
	}
	return false
}

// ParseExtensions splits a comma-separated allow-list ("jpg,png, GIF") into
// normalized lowercase extensions. Empty input yields nil.
func ParseExtensions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var exts []string
	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(part, ".")))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// MatchesExtensions reports whether the file name passes the allow-list.
// A nil/empty list matches everything.
func MatchesExtensions(name string, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	ext := fsutil.Extension(name)
	if ext == "" {
		return false
	}
	for _, a := range allow {
		if ext == a {
			return true
		}
	}
	return false
}

// Walk traverses root recursively (symlinks not followed) and returns every
// regular file that survives the Options filters, in traversal order.
//
// A root that does not exist or is not a directory is the only fatal error.
// Everything else (unreadable subdirectory, vanished entry, failed stat) is
// recorded in Result.Failures and the walk continues.
func Walk(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}

	res := &Result{}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Failures = append(res.Failures, err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && ShouldSkip(name, true, opts.IncludeHidden) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks and other irregular entries are not files to us.
		if !d.Type().IsRegular() {
			return nil
		}
		if ShouldSkip(name, false, opts.IncludeHidden) {
			return nil
		}
		if !MatchesExtensions(name, opts.Extensions) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			res.Failures = append(res.Failures, err)
			return nil
		}
		size := uint64(fi.Size())
		if size < opts.MinSize {
			return nil
		}

		res.Files = append(res.Files, FileRecord{Path: path, Size: size})
		return nil
	})
	if walkErr != nil {
		// WalkDir only returns an error we produced, and we always return
		// nil from the callback, so this is unreachable in practice.
		return nil, walkErr
	}

	return res, nil
}
