// SPDX-License-Identifier: MPL-2.0

package rename

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNewPlanBasic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "IMG_001.jpg"))
	touch(t, filepath.Join(root, "IMG_002.jpg"))
	touch(t, filepath.Join(root, "notes.txt"))

	plan, err := NewPlan(root, regexp.MustCompile(`^IMG_`), "photo_", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(plan.Changes))
	}
	if len(plan.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %v", plan.Conflicts)
	}
	for _, c := range plan.Changes {
		if filepath.Dir(c.OldPath) != filepath.Dir(c.NewPath) {
			t.Errorf("rename crossed directories: %+v", c)
		}
	}
	if filepath.Base(plan.Changes[0].NewPath) != "photo_001.jpg" {
		t.Errorf("NewPath = %s, want photo_001.jpg", plan.Changes[0].NewPath)
	}
}

func TestNewPlanSkipsUnchangedNames(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "same.txt"))

	// Pattern matches but replacement reproduces the original name.
	plan, err := NewPlan(root, regexp.MustCompile(`same`), "same", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Changes) != 0 {
		t.Errorf("no-op rename planned: %+v", plan.Changes)
	}
}

func TestNewPlanCaptureGroups(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "report-2024.txt"))

	plan, err := NewPlan(root, regexp.MustCompile(`report-(\d+)`), "${1}-report", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Changes) != 1 || filepath.Base(plan.Changes[0].NewPath) != "2024-report.txt" {
		t.Fatalf("capture-group replacement wrong: %+v", plan.Changes)
	}
}

func TestNewPlanRecursion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "a_old.txt"))
	touch(t, filepath.Join(root, "sub", "b_old.txt"))

	re := regexp.MustCompile(`_old`)

	flat, err := NewPlan(root, re, "_new", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(flat.Changes) != 1 {
		t.Errorf("non-recursive plan has %d changes, want 1", len(flat.Changes))
	}

	deep, err := NewPlan(root, re, "_new", Options{Recursive: true})
	if err != nil {
		t.Fatalf("NewPlan recursive: %v", err)
	}
	if len(deep.Changes) != 2 {
		t.Errorf("recursive plan has %d changes, want 2", len(deep.Changes))
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("target exists", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		touch(t, filepath.Join(root, "draft.txt"))
		touch(t, filepath.Join(root, "final.txt")) // occupies the target

		plan, err := NewPlan(root, regexp.MustCompile(`draft`), "final", Options{})
		if err != nil {
			t.Fatalf("NewPlan: %v", err)
		}
		if len(plan.Conflicts) != 1 || plan.Conflicts[0].Reason != ConflictExists {
			t.Fatalf("Conflicts = %+v, want one %q", plan.Conflicts, ConflictExists)
		}
	})

	t.Run("occupant renamed away is no conflict", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		touch(t, filepath.Join(root, "file1.txt"))
		touch(t, filepath.Join(root, "file2.txt"))

		// Shift chain: file1→file2 and file2→file3. file2.txt exists but
		// is itself being renamed away, so the target is free.
		plan := &Plan{Changes: []Change{
			{OldPath: filepath.Join(root, "file1.txt"), NewPath: filepath.Join(root, "file2.txt")},
			{OldPath: filepath.Join(root, "file2.txt"), NewPath: filepath.Join(root, "file3.txt")},
		}}
		plan.detectConflicts()
		if len(plan.Conflicts) != 0 {
			t.Errorf("Conflicts = %+v, want none", plan.Conflicts)
		}
	})

	t.Run("reserved target name", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		touch(t, filepath.Join(root, "connection.txt"))

		plan, err := NewPlan(root, regexp.MustCompile(`nection`), "", Options{})
		if err != nil {
			t.Fatalf("NewPlan: %v", err)
		}
		// Target becomes con.txt, unusable on Windows.
		if len(plan.Conflicts) != 1 || plan.Conflicts[0].Reason != ConflictReservedName {
			t.Fatalf("Conflicts = %+v, want one %q", plan.Conflicts, ConflictReservedName)
		}
	})

	t.Run("duplicate target", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		touch(t, filepath.Join(root, "a-1.txt"))
		touch(t, filepath.Join(root, "b-1.txt"))

		plan, err := NewPlan(root, regexp.MustCompile(`^[ab]`), "c", Options{})
		if err != nil {
			t.Fatalf("NewPlan: %v", err)
		}
		// Both changes target c-1.txt; each is flagged.
		dups := 0
		for _, c := range plan.Conflicts {
			if c.Reason == ConflictDuplicateTarget {
				dups++
			}
		}
		if dups != 2 {
			t.Errorf("duplicate-target conflicts = %d, want 2 (%+v)", dups, plan.Conflicts)
		}
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "one_old.txt"))
	touch(t, filepath.Join(root, "two_old.txt"))

	plan, err := NewPlan(root, regexp.MustCompile(`_old`), "", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	res := plan.Apply()
	if res.Renamed != 2 || len(res.Failures) != 0 {
		t.Fatalf("ApplyResult = %+v, want 2 renamed", res)
	}
	for _, name := range []string{"one.txt", "two.txt"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("renamed file %s missing: %v", name, err)
		}
	}
}

func TestApplyPartialFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "ok_old.txt"))

	plan := &Plan{Changes: []Change{
		{OldPath: filepath.Join(root, "missing_old.txt"), NewPath: filepath.Join(root, "missing.txt")},
		{OldPath: filepath.Join(root, "ok_old.txt"), NewPath: filepath.Join(root, "ok.txt")},
	}}

	res := plan.Apply()
	if res.Renamed != 1 || len(res.Failures) != 1 {
		t.Fatalf("ApplyResult = %+v, want 1 renamed / 1 failure", res)
	}
	if _, err := os.Stat(filepath.Join(root, "ok.txt")); err != nil {
		t.Errorf("surviving rename not applied: %v", err)
	}
}
