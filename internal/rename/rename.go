// SPDX-License-Identifier: MPL-2.0

// Package rename plans and applies regex-based bulk file renames. Planning
// and execution are separate steps so the caller can preview changes,
// surface conflicts, and only then commit.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"

	"ftools-cli/internal/scan"
	"ftools-cli/pkg/platform"
)

// ConflictReason classifies why a planned rename cannot proceed.
type ConflictReason string

const (
	// ConflictExists means the target path already exists on disk and is
	// not itself being renamed away.
	ConflictExists ConflictReason = "already exists"
	// ConflictDuplicateTarget means two planned renames collide on the
	// same target path.
	ConflictDuplicateTarget ConflictReason = "duplicate target"
	// ConflictReservedName means the target base name is reserved on
	// Windows and would make the tree unusable there.
	ConflictReservedName ConflictReason = "reserved name"
)

type (
	// Options controls which files are considered for renaming.
	Options struct {
		// Extensions is the lowercase extension allow-list (no dot).
		Extensions []string
		// Recursive descends into subdirectories; otherwise only the root's
		// immediate children are considered.
		Recursive bool
		// IncludeHidden considers hidden files too.
		IncludeHidden bool
	}

	// Change is one planned rename. Both paths share a directory: only the
	// base name is rewritten.
	Change struct {
		OldPath string
		NewPath string
	}

	// Conflict is a planned rename that must not be applied.
	Conflict struct {
		Path   string
		Reason ConflictReason
	}

	// Plan is the preview of a bulk rename.
	Plan struct {
		Changes   []Change
		Conflicts []Conflict
	}

	// ApplyResult summarizes an executed plan. Failures carry the renames
	// the OS rejected; the rest of the plan still went through.
	ApplyResult struct {
		Renamed  int
		Failures []ApplyFailure
	}

	// ApplyFailure is one rename the OS rejected.
	ApplyFailure struct {
		OldPath string
		Err     error
	}
)

// NewPlan matches re against every candidate file's base name and records
// the renames the replacement produces. Files whose name is unchanged by
// the replacement are skipped. Conflicts are detected but left in the
// plan; deciding whether they abort the run is the caller's job.
func NewPlan(root string, re *regexp.Regexp, replacement string, opts Options) (*Plan, error) {
	files, err := candidates(root, opts)
	if err != nil {
		return nil, err
	}

	plan := &Plan{}
	for _, path := range files {
		name := filepath.Base(path)
		if !re.MatchString(name) {
			continue
		}
		newName := re.ReplaceAllString(name, replacement)
		if newName == name {
			continue
		}
		plan.Changes = append(plan.Changes, Change{
			OldPath: path,
			NewPath: filepath.Join(filepath.Dir(path), newName),
		})
	}

	plan.detectConflicts()
	return plan, nil
}

// candidates returns the files eligible for renaming, in traversal order.
func candidates(root string, opts Options) ([]string, error) {
	if opts.Recursive {
		res, err := scan.Walk(root, scan.Options{
			Extensions:    opts.Extensions,
			IncludeHidden: opts.IncludeHidden,
		})
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(res.Files))
		for _, rec := range res.Files {
			paths = append(paths, rec.Path)
		}
		return paths, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if scan.ShouldSkip(name, false, opts.IncludeHidden) {
			continue
		}
		if !scan.MatchesExtensions(name, opts.Extensions) {
			continue
		}
		paths = append(paths, filepath.Join(root, name))
	}
	return paths, nil
}

// detectConflicts flags targets that already exist on disk (unless the
// occupant is itself being renamed away) and targets claimed by more than
// one change.
func (p *Plan) detectConflicts() {
	renamedAway := make(map[string]bool, len(p.Changes))
	for _, c := range p.Changes {
		renamedAway[c.OldPath] = true
	}

	targets := make(map[string]int)
	for _, c := range p.Changes {
		targets[c.NewPath]++
	}

	for _, c := range p.Changes {
		if _, err := os.Lstat(c.NewPath); err == nil && !renamedAway[c.NewPath] {
			p.Conflicts = append(p.Conflicts, Conflict{Path: c.NewPath, Reason: ConflictExists})
		}
		if targets[c.NewPath] > 1 {
			p.Conflicts = append(p.Conflicts, Conflict{Path: c.NewPath, Reason: ConflictDuplicateTarget})
		}
		if platform.IsReservedFileName(filepath.Base(c.NewPath)) {
			p.Conflicts = append(p.Conflicts, Conflict{Path: c.NewPath, Reason: ConflictReservedName})
		}
	}
}

// Apply executes every planned rename. Each rename is attempted
// independently; a failure is recorded and the rest of the plan proceeds.
func (p *Plan) Apply() ApplyResult {
	var res ApplyResult
	for _, c := range p.Changes {
		if err := os.Rename(c.OldPath, c.NewPath); err != nil {
			log.Warn("rename failed", "from", c.OldPath, "err", err)
			res.Failures = append(res.Failures, ApplyFailure{OldPath: c.OldPath, Err: err})
			continue
		}
		res.Renamed++
	}
	return res
}
