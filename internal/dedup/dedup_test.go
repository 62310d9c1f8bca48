// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"ftools-cli/internal/scan"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// The canonical scenario: two 10-byte files with identical content and a
// 20-byte file with different content.
func scenarioTree(t *testing.T) (root string) {
	t.Helper()
	root = t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("same-bytes"))  // 10 bytes
	writeFile(t, filepath.Join(root, "b.txt"), []byte("same-bytes"))  // 10 bytes
	writeFile(t, filepath.Join(root, "c.txt"), []byte("unique-bytes-here-20")) // 20 bytes
	return root
}

func TestEngineScenario(t *testing.T) {
	t.Parallel()

	root := scenarioTree(t)
	eng := New(Options{SortPaths: true})

	rep, info, err := eng.Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.TotalGroups != 1 {
		t.Fatalf("TotalGroups = %d, want 1", rep.TotalGroups)
	}
	if rep.TotalDuplicates != 1 {
		t.Errorf("TotalDuplicates = %d, want 1", rep.TotalDuplicates)
	}
	if rep.WastedSpace != 10 {
		t.Errorf("WastedSpace = %d, want 10", rep.WastedSpace)
	}

	g := rep.Groups[0]
	if g.Size != 10 || len(g.Files) != 2 {
		t.Fatalf("group = %+v, want two 10-byte members", g)
	}
	if filepath.Base(g.Files[0]) != "a.txt" || filepath.Base(g.Files[1]) != "b.txt" {
		t.Errorf("group members = %v, want [a.txt b.txt]", g.Files)
	}

	// The size-unique file must never have been a hash candidate.
	if info.Candidates != 2 {
		t.Errorf("Candidates = %d, want 2 (c.txt must not be hashed)", info.Candidates)
	}
	if done, total := eng.Progress(); done != 2 || total != 2 {
		t.Errorf("Progress = (%d, %d), want (2, 2)", done, total)
	}
	if info.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", info.FilesScanned)
	}
}

func TestEngineDeterministicRerun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one", "x.bin"), []byte("payload-A"))
	writeFile(t, filepath.Join(root, "two", "y.bin"), []byte("payload-A"))
	writeFile(t, filepath.Join(root, "two", "z.bin"), []byte("payload-B"))
	writeFile(t, filepath.Join(root, "w.bin"), []byte("payload-B"))

	run := func() *Report {
		rep, _, err := New(Options{SortPaths: true}).Run(root)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return rep
	}

	first, second := run(), run()
	if first.TotalGroups != second.TotalGroups ||
		first.TotalDuplicates != second.TotalDuplicates ||
		first.WastedSpace != second.WastedSpace {
		t.Fatalf("aggregates changed between runs: %+v vs %+v", first, second)
	}

	membership := func(rep *Report) map[string][]string {
		m := make(map[string][]string)
		for _, g := range rep.Groups {
			m[g.Digest] = g.Files
		}
		return m
	}
	m1, m2 := membership(first), membership(second)
	if len(m1) != len(m2) {
		t.Fatalf("group membership changed between runs")
	}
	for digest, files := range m1 {
		other, ok := m2[digest]
		if !ok || len(other) != len(files) {
			t.Errorf("group %s differs between runs: %v vs %v", digest[:12], files, other)
			continue
		}
		for i := range files {
			if files[i] != other[i] {
				t.Errorf("group %s member %d differs: %s vs %s", digest[:12], i, files[i], other[i])
			}
		}
	}
}

func TestEngineNoiseDirNeverGrouped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.txt"), []byte("duplicated content"))
	writeFile(t, filepath.Join(root, "copy.txt"), []byte("duplicated content"))
	writeFile(t, filepath.Join(root, "node_modules", "ghost.txt"), []byte("duplicated content"))

	rep, _, err := New(Options{SortPaths: true}).Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TotalGroups != 1 {
		t.Fatalf("TotalGroups = %d, want 1", rep.TotalGroups)
	}
	for _, f := range rep.Groups[0].Files {
		if filepath.Base(filepath.Dir(f)) == "node_modules" {
			t.Errorf("noise-directory file leaked into group: %s", f)
		}
	}
	if len(rep.Groups[0].Files) != 2 {
		t.Errorf("group has %d members, want 2", len(rep.Groups[0].Files))
	}
}

func TestEngineLargeBucketQuickHashPath(t *testing.T) {
	t.Parallel()

	// Six same-size files: four identical, two sharing a different
	// content. Bucket size exceeds the quick-hash threshold, so the
	// partition path runs; membership must be unaffected.
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		writeFile(t, filepath.Join(root, name+".dat"), []byte("AAAAAAAAAA"))
	}
	writeFile(t, filepath.Join(root, "e.dat"), []byte("BBBBBBBBBB"))
	writeFile(t, filepath.Join(root, "f.dat"), []byte("BBBBBBBBBB"))

	rep, _, err := New(Options{SortPaths: true}).Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TotalGroups != 2 {
		t.Fatalf("TotalGroups = %d, want 2", rep.TotalGroups)
	}
	if rep.TotalDuplicates != 4 {
		t.Errorf("TotalDuplicates = %d, want 4", rep.TotalDuplicates)
	}
	if rep.WastedSpace != 40 {
		t.Errorf("WastedSpace = %d, want 40", rep.WastedSpace)
	}
}

func TestEngineParanoidPassThrough(t *testing.T) {
	t.Parallel()

	// With honest digests the paranoid gate must not change anything.
	root := scenarioTree(t)
	rep, info, err := New(Options{SortPaths: true, Paranoid: true}).Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TotalGroups != 1 || rep.TotalDuplicates != 1 {
		t.Errorf("paranoid run altered results: %+v", rep)
	}
	if len(info.CollisionSuspects) != 0 {
		t.Errorf("CollisionSuspects = %v, want none", info.CollisionSuspects)
	}
}

func TestBucketBySize(t *testing.T) {
	t.Parallel()

	records := []scan.FileRecord{
		{Path: "/x/a", Size: 10},
		{Path: "/x/b", Size: 20},
		{Path: "/x/c", Size: 10},
		{Path: "/x/d", Size: 30},
		{Path: "/x/e", Size: 20},
		{Path: "/x/f", Size: 10},
	}

	buckets := bucketBySize(records)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (size 30 is a singleton)", len(buckets))
	}

	// First-arrival order across buckets, traversal order within.
	if buckets[0].size != 10 || buckets[1].size != 20 {
		t.Errorf("bucket order = [%d %d], want [10 20]", buckets[0].size, buckets[1].size)
	}
	wantFirst := []string{"/x/a", "/x/c", "/x/f"}
	for i, rec := range buckets[0].files {
		if rec.Path != wantFirst[i] {
			t.Errorf("bucket[0] member %d = %s, want %s", i, rec.Path, wantFirst[i])
		}
	}
}

func TestHashCandidatesFailureExcluded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ok1 := filepath.Join(dir, "ok1")
	ok2 := filepath.Join(dir, "ok2")
	writeFile(t, ok1, []byte("same"))
	writeFile(t, ok2, []byte("same"))

	buckets := []*sizeBucket{{
		size: 4,
		files: []scan.FileRecord{
			{Path: ok1, Size: 4},
			{Path: filepath.Join(dir, "vanished"), Size: 4},
			{Path: ok2, Size: 4},
		},
	}}

	eng := New(Options{Workers: 2})
	info := &RunInfo{}
	hashed := eng.hashCandidates(buckets, info)

	if len(info.HashFailures) != 1 {
		t.Fatalf("HashFailures = %v, want exactly one", info.HashFailures)
	}

	groups := groupByDigest(hashed)
	if len(groups) != 1 || len(groups[0].Files) != 2 {
		t.Fatalf("groups = %+v, want one group of the two readable files", groups)
	}
	for _, f := range groups[0].Files {
		if filepath.Base(f) == "vanished" {
			t.Error("failed hash produced a group member")
		}
	}
}

func TestGroupByDigestConverse(t *testing.T) {
	t.Parallel()

	// Any two members of the same group share size and digest, and files
	// with equal digests in the same bucket always land together.
	hb := &hashedBucket{
		size: 8,
		bucket: &sizeBucket{size: 8, files: []scan.FileRecord{
			{Path: "/p/1", Size: 8},
			{Path: "/p/2", Size: 8},
			{Path: "/p/3", Size: 8},
			{Path: "/p/4", Size: 8},
		}},
		digests: []string{"dd11", "dd22", "dd11", "dd22"},
	}

	groups := groupByDigest([]*hashedBucket{hb})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Digest != "dd11" || groups[0].Files[0] != "/p/1" || groups[0].Files[1] != "/p/3" {
		t.Errorf("group 0 = %+v, want dd11 {/p/1, /p/3}", groups[0])
	}
	if groups[1].Digest != "dd22" || groups[1].Files[0] != "/p/2" || groups[1].Files[1] != "/p/4" {
		t.Errorf("group 1 = %+v, want dd22 {/p/2, /p/4}", groups[1])
	}
}

func TestVerifyGroupsEvictsCollisions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keep := filepath.Join(dir, "keep")
	twin := filepath.Join(dir, "twin")
	fake := filepath.Join(dir, "fake")
	writeFile(t, keep, []byte("identical"))
	writeFile(t, twin, []byte("identical"))
	writeFile(t, fake, []byte("differentz")) // same length class, forged digest

	info := &RunInfo{}
	groups := verifyGroups([]Group{{
		Digest: "forged-digest",
		Size:   9,
		Files:  []string{keep, twin, fake},
	}}, info)

	if len(groups) != 1 || len(groups[0].Files) != 2 {
		t.Fatalf("verified groups = %+v, want keep+twin", groups)
	}
	if len(info.CollisionSuspects) != 1 || info.CollisionSuspects[0] != fake {
		t.Errorf("CollisionSuspects = %v, want [%s]", info.CollisionSuspects, fake)
	}
}

func TestFilesEqual(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	big := bytes.Repeat([]byte("block"), 40_000) // spans multiple compare chunks

	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	writeFile(t, a, big)
	writeFile(t, b, big)

	tailDiff := append([]byte{}, big...)
	tailDiff[len(tailDiff)-1] = '!' // same length, last byte differs
	writeFile(t, c, tailDiff)

	if eq, err := filesEqual(a, b); err != nil || !eq {
		t.Errorf("filesEqual(a, b) = (%v, %v), want (true, nil)", eq, err)
	}
	if eq, err := filesEqual(a, c); err != nil || eq {
		t.Errorf("filesEqual(a, c) = (%v, %v), want (false, nil)", eq, err)
	}
	if _, err := filesEqual(a, filepath.Join(dir, "missing")); err == nil {
		t.Error("filesEqual with missing file succeeded, want error")
	}
}

func TestDeleteDuplicates(t *testing.T) {
	t.Parallel()

	t.Run("keeps index zero", func(t *testing.T) {
		t.Parallel()
		root := scenarioTree(t)
		rep, _, err := New(Options{SortPaths: true}).Run(root)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		res := DeleteDuplicates(rep)
		if res.Deleted != 1 || res.FreedBytes != 10 || len(res.Failures) != 0 {
			t.Fatalf("DeleteResult = %+v, want 1 deleted / 10 freed / no failures", res)
		}
		if _, err := os.Stat(filepath.Join(root, "a.txt")); err != nil {
			t.Errorf("keep a.txt was removed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "b.txt")); !os.IsNotExist(err) {
			t.Errorf("dupe b.txt still present (err=%v)", err)
		}
		if _, err := os.Stat(filepath.Join(root, "c.txt")); err != nil {
			t.Errorf("unrelated c.txt was touched: %v", err)
		}
	})

	t.Run("failures do not stop the pass", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		survivor := filepath.Join(dir, "s")
		doomed := filepath.Join(dir, "d")
		writeFile(t, survivor, []byte("1234"))
		writeFile(t, doomed, []byte("1234"))

		rep := &Report{Groups: []Group{{
			Digest: "unused",
			Size:   4,
			Files:  []string{survivor, filepath.Join(dir, "already-gone"), doomed},
		}}}

		res := DeleteDuplicates(rep)
		if res.Deleted != 1 || res.FreedBytes != 4 {
			t.Errorf("DeleteResult = %+v, want the readable dupe removed", res)
		}
		if len(res.Failures) != 1 {
			t.Errorf("Failures = %v, want exactly one", res.Failures)
		}
		if _, err := os.Stat(survivor); err != nil {
			t.Errorf("keep was removed: %v", err)
		}
	})
}

func TestReportAggregates(t *testing.T) {
	t.Parallel()

	rep := buildReport([]Group{
		{Digest: "g1", Size: 100, Files: []string{"a", "b", "c"}},
		{Digest: "g2", Size: 7, Files: []string{"d", "e"}},
	})

	if rep.TotalGroups != 2 {
		t.Errorf("TotalGroups = %d, want 2", rep.TotalGroups)
	}
	if rep.TotalDuplicates != 3 {
		t.Errorf("TotalDuplicates = %d, want 3", rep.TotalDuplicates)
	}
	if want := uint64(100*2 + 7*1); rep.WastedSpace != want {
		t.Errorf("WastedSpace = %d, want %d", rep.WastedSpace, want)
	}
}

func TestReportJSONFieldNames(t *testing.T) {
	t.Parallel()

	rep := buildReport([]Group{{Digest: "abcd", Size: 5, Files: []string{"x", "y"}}})
	path := filepath.Join(t.TempDir(), "report.json")
	if err := rep.WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, key := range []string{`"total_groups"`, `"total_duplicates"`, `"wasted_space"`, `"groups"`, `"hash"`, `"size"`, `"files"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("export is missing field %s", key)
		}
	}
}
