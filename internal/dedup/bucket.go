// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"sort"

	"ftools-cli/internal/hashing"
	"ftools-cli/internal/scan"
)

// sizeBucket holds every scanned file of one exact byte length, in
// traversal-arrival order. That order is load-bearing: it survives
// unmodified through hashing and grouping and ultimately decides which
// group member is the keep.
type sizeBucket struct {
	size  uint64
	files []scan.FileRecord
}

// bucketBySize groups records by exact size and discards every bucket
// with a single member. A size that occurs once cannot contain a
// duplicate, so those files are never hashed. Buckets come back in
// first-arrival order so downstream output is deterministic for a given
// traversal.
func bucketBySize(records []scan.FileRecord) []*sizeBucket {
	bySize := make(map[uint64]*sizeBucket)
	var order []uint64

	for _, rec := range records {
		b, ok := bySize[rec.Size]
		if !ok {
			b = &sizeBucket{size: rec.Size}
			bySize[rec.Size] = b
			order = append(order, rec.Size)
		}
		b.files = append(b.files, rec)
	}

	var out []*sizeBucket
	for _, size := range order {
		if b := bySize[size]; len(b.files) > 1 {
			out = append(out, b)
		}
	}
	return out
}

// sortBuckets orders each bucket's members lexicographically by path,
// replacing traversal order as the keep/dupe tie-break. Opt-in: traversal
// order is filesystem-dependent and callers wanting reproducible keep
// selection across platforms ask for this.
func sortBuckets(buckets []*sizeBucket) {
	for _, b := range buckets {
		sort.Slice(b.files, func(i, j int) bool {
			return b.files[i].Path < b.files[j].Path
		})
	}
}

// partitionByQuickHash splits large buckets into sub-buckets keyed by a
// hash of each file's first 4 KiB, then prunes singletons again. Files
// whose first blocks differ can never be duplicates, so this spends one
// cheap read per file to avoid full digests over whole multi-gigabyte
// buckets. Relative order inside each sub-bucket is preserved, and files
// are only ever separated on proven difference, so group membership is
// unchanged. A quick-hash failure excludes the file, same as a full-hash
// failure would.
func (e *Engine) partitionByQuickHash(buckets []*sizeBucket, info *RunInfo) []*sizeBucket {
	var out []*sizeBucket
	for _, b := range buckets {
		if len(b.files) < quickHashMinBucket {
			out = append(out, b)
			continue
		}

		parts := make(map[uint64]*sizeBucket)
		var order []uint64
		for _, rec := range b.files {
			sum, err := hashing.QuickSum(rec.Path)
			if err != nil {
				info.HashFailures = append(info.HashFailures, FileError{Path: rec.Path, Err: err})
				continue
			}
			p, ok := parts[sum]
			if !ok {
				p = &sizeBucket{size: b.size}
				parts[sum] = p
				order = append(order, sum)
			}
			p.files = append(p.files, rec)
		}

		for _, sum := range order {
			if p := parts[sum]; len(p.files) > 1 {
				out = append(out, p)
			}
		}
	}
	return out
}
