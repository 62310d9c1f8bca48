// SPDX-License-Identifier: MPL-2.0

// Package compare diffs two directory trees by relative path. The cheap
// mode compares sizes only; content mode confirms equality by hashing,
// gated on equal size so differing files are never read twice.
package compare

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"ftools-cli/internal/hashing"
)

type (
	// Options controls how file pairs are compared.
	Options struct {
		// Content hashes size-equal pairs to confirm identity instead of
		// trusting size alone.
		Content bool
		// Algorithm is the digest used in content mode.
		Algorithm hashing.Algorithm
	}

	// Entry is a file present on only one side.
	Entry struct {
		RelPath string
		Size    uint64
	}

	// ModifiedEntry is a file present on both sides with differing
	// content (or size, in cheap mode).
	ModifiedEntry struct {
		RelPath string
		SizeA   uint64
		SizeB   uint64
	}

	// Diff is the result of comparing tree A against tree B. All slices
	// are sorted by relative path.
	Diff struct {
		OnlyA     []Entry
		OnlyB     []Entry
		Modified  []ModifiedEntry
		Identical []Entry
	}
)

// Changes counts the entries that differ between the two trees.
func (d *Diff) Changes() int {
	return len(d.OnlyA) + len(d.OnlyB) + len(d.Modified)
}

// Run compares the trees rooted at dirA and dirB. Either root missing or
// not a directory is fatal; unreadable files inside the trees are treated
// as modified so they surface rather than vanish.
func Run(dirA, dirB string, opts Options) (*Diff, error) {
	filesA, err := collect(dirA)
	if err != nil {
		return nil, err
	}
	filesB, err := collect(dirB)
	if err != nil {
		return nil, err
	}

	diff := &Diff{}
	for rel, sizeA := range filesA {
		sizeB, ok := filesB[rel]
		if !ok {
			diff.OnlyA = append(diff.OnlyA, Entry{RelPath: rel, Size: sizeA})
			continue
		}

		same := sizeA == sizeB
		if same && opts.Content {
			same = sameContent(filepath.Join(dirA, rel), filepath.Join(dirB, rel), opts.Algorithm)
		}
		if same {
			diff.Identical = append(diff.Identical, Entry{RelPath: rel, Size: sizeA})
		} else {
			diff.Modified = append(diff.Modified, ModifiedEntry{RelPath: rel, SizeA: sizeA, SizeB: sizeB})
		}
	}
	for rel, sizeB := range filesB {
		if _, ok := filesA[rel]; !ok {
			diff.OnlyB = append(diff.OnlyB, Entry{RelPath: rel, Size: sizeB})
		}
	}

	sort.Slice(diff.OnlyA, func(i, j int) bool { return diff.OnlyA[i].RelPath < diff.OnlyA[j].RelPath })
	sort.Slice(diff.OnlyB, func(i, j int) bool { return diff.OnlyB[i].RelPath < diff.OnlyB[j].RelPath })
	sort.Slice(diff.Modified, func(i, j int) bool { return diff.Modified[i].RelPath < diff.Modified[j].RelPath })
	sort.Slice(diff.Identical, func(i, j int) bool { return diff.Identical[i].RelPath < diff.Identical[j].RelPath })

	return diff, nil
}

func sameContent(pathA, pathB string, alg hashing.Algorithm) bool {
	hashA, errA := hashing.SumFile(pathA, alg)
	hashB, errB := hashing.SumFile(pathB, alg)
	if errA != nil || errB != nil {
		log.Debug("compare hash failed", "a", pathA, "errA", errA, "errB", errB)
		return false
	}
	return hashA == hashB
}

// collect maps every regular file under base to its size, keyed by
// slash-normalized relative path.
func collect(base string) (map[string]uint64, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", base)
	}

	files := make(map[string]uint64)
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("compare walk error", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			log.Debug("compare stat error", "path", path, "err", err)
			return nil
		}
		files[filepath.ToSlash(rel)] = uint64(fi.Size())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
