// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"bytes"
	"io"
	"os"
)

// compareChunkSize is the read granularity for paranoid byte comparison.
const compareChunkSize = 64 << 10

// groupByDigest regroups each hashed bucket by digest value and keeps
// only groups with two or more members. Files from different buckets are
// never compared: their sizes already differ. Group order follows bucket
// order, and members keep their bucket order, so the first member of a
// group is the first-discovered file. Members with a failed hash (empty
// digest) are skipped entirely.
func groupByDigest(buckets []*hashedBucket) []Group {
	var groups []Group

	for _, hb := range buckets {
		byDigest := make(map[string]int)
		var bucketGroups []Group

		for i, rec := range hb.bucket.files {
			digest := hb.digests[i]
			if digest == "" {
				continue
			}
			gi, ok := byDigest[digest]
			if !ok {
				gi = len(bucketGroups)
				byDigest[digest] = gi
				bucketGroups = append(bucketGroups, Group{Digest: digest, Size: hb.size})
			}
			bucketGroups[gi].Files = append(bucketGroups[gi].Files, rec.Path)
		}

		for _, g := range bucketGroups {
			if len(g.Files) > 1 {
				groups = append(groups, g)
			}
		}
	}

	return groups
}

// verifyGroups byte-compares every group member against the group's keep
// (index 0) and evicts members whose content actually differs — a real
// digest collision. Evicted paths are recorded as collision suspects;
// groups reduced below two members disappear. Files that cannot be
// re-read are evicted too, since their equality is unprovable.
func verifyGroups(groups []Group, info *RunInfo) []Group {
	var out []Group
	for _, g := range groups {
		verified := Group{Digest: g.Digest, Size: g.Size, Files: g.Files[:1]}
		for _, path := range g.Files[1:] {
			equal, err := filesEqual(g.Files[0], path)
			if err != nil {
				info.HashFailures = append(info.HashFailures, FileError{Path: path, Err: err})
				continue
			}
			if !equal {
				info.CollisionSuspects = append(info.CollisionSuspects, path)
				continue
			}
			verified.Files = append(verified.Files, path)
		}
		if len(verified.Files) > 1 {
			out = append(out, verified)
		}
	}
	return out
}

// filesEqual streams both files and reports whether their contents are
// byte-identical.
func filesEqual(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		aDone := errA == io.EOF || errA == io.ErrUnexpectedEOF
		bDone := errB == io.EOF || errB == io.ErrUnexpectedEOF
		switch {
		case errA == nil && errB == nil:
			continue
		case aDone && bDone:
			return true, nil
		case aDone != bDone:
			return false, nil
		default:
			if errA != nil {
				return false, errA
			}
			return false, errB
		}
	}
}
