// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"sync"

	"ftools-cli/internal/hashing"
)

// hashedBucket pairs a size bucket's members with their computed digests.
// digests is index-aligned with files; an empty string marks a member
// whose hash failed and which must not reach grouping.
type hashedBucket struct {
	size    uint64
	bucket  *sizeBucket
	digests []string
}

type hashJob struct {
	bucketIdx int
	fileIdx   int
	path      string
}

type hashResult struct {
	bucketIdx int
	fileIdx   int
	digest    string
	err       error
}

// hashCandidates computes the content digest of every bucket member using
// a fixed pool of workers. Each file is hashed exactly once. Workers share
// nothing but the job/result channels and the progress counter; the final
// file-to-digest association is rebuilt from job indices, never from
// completion order, so within-bucket ordering survives the pool.
func (e *Engine) hashCandidates(buckets []*sizeBucket, info *RunInfo) []*hashedBucket {
	out := make([]*hashedBucket, len(buckets))
	total := 0
	for i, b := range buckets {
		out[i] = &hashedBucket{
			size:    b.size,
			bucket:  b,
			digests: make([]string, len(b.files)),
		}
		total += len(b.files)
	}
	if total == 0 {
		return out
	}

	jobs := make(chan hashJob, total)
	results := make(chan hashResult, total)

	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				digest, err := hashing.SumFile(j.path, e.opts.Algorithm)
				e.done.Add(1)
				results <- hashResult{bucketIdx: j.bucketIdx, fileIdx: j.fileIdx, digest: digest, err: err}
			}
		}()
	}

	for bi, b := range buckets {
		for fi, rec := range b.files {
			jobs <- hashJob{bucketIdx: bi, fileIdx: fi, path: rec.Path}
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single consumer: failures and digests are written from one
	// goroutine only.
	for res := range results {
		if res.err != nil {
			path := buckets[res.bucketIdx].files[res.fileIdx].Path
			info.HashFailures = append(info.HashFailures, FileError{Path: path, Err: res.err})
			continue
		}
		out[res.bucketIdx].digests[res.fileIdx] = res.digest
	}

	return out
}
