// SPDX-License-Identifier: MPL-2.0

// Package dedup finds files with byte-identical content under a directory
// tree. The pipeline is strictly phased: a single-threaded scan groups
// files by exact size, buckets that cannot contain a duplicate are pruned
// before any hashing happens, and only then does a worker pool compute
// full content digests for the surviving candidates. Hashing is the
// expensive step, so everything before it exists to avoid it.
package dedup

import (
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"ftools-cli/internal/hashing"
	"ftools-cli/internal/scan"
)

// quickHashMinBucket is the bucket size at which the engine spends a
// 4 KiB quick hash per file to sub-partition the bucket before full
// hashing. Below this, the partition bookkeeping costs more than the
// full hashes it could save.
const quickHashMinBucket = 4

type (
	// Options configures a duplicate-detection run.
	Options struct {
		// MinSize excludes files smaller than this many bytes (default 1).
		MinSize uint64
		// Extensions optionally restricts the scan to an allow-list.
		Extensions []string
		// IncludeHidden keeps dotfiles in the scan.
		IncludeHidden bool
		// Algorithm selects the content digest (default SHA-256).
		Algorithm hashing.Algorithm
		// Workers sizes the hash pool; <= 0 means runtime.NumCPU().
		Workers int
		// SortPaths sorts each size bucket lexicographically before
		// hashing, making the keep/dupe designation independent of
		// filesystem traversal order.
		SortPaths bool
		// Paranoid byte-compares every group member against the keep
		// before the group is reported, guarding against digest
		// collisions at the cost of re-reading every duplicate.
		Paranoid bool
	}

	// FileError records a per-file failure that did not stop the run.
	FileError struct {
		Path string
		Err  error
	}

	// RunInfo carries run diagnostics that are not part of the report
	// document: scan volume and the observable per-file failures.
	RunInfo struct {
		FilesScanned int
		Candidates   int
		// ScanFailures are entries the traversal could not read.
		ScanFailures []error
		// HashFailures are candidates whose digest could not be computed;
		// they are excluded from grouping entirely.
		HashFailures []FileError
		// CollisionSuspects are files that shared a digest with a group
		// but failed the paranoid byte-compare. Only populated when
		// Options.Paranoid is set; a non-empty list means an actual
		// digest collision was observed.
		CollisionSuspects []string
	}

	// Engine runs the detection pipeline. Progress is safe to read from
	// another goroutine while Run executes.
	Engine struct {
		opts Options

		done  atomic.Uint64
		total atomic.Uint64
	}
)

// New returns an Engine for the given options.
func New(opts Options) *Engine {
	if opts.MinSize == 0 {
		opts.MinSize = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Engine{opts: opts}
}

// Progress reports hashed-so-far and total candidate counts. The counters
// only ever increase during a run; a UI may poll them without blocking
// the workers.
func (e *Engine) Progress() (done, total uint64) {
	return e.done.Load(), e.total.Load()
}

// Run executes the full pipeline against root and returns the duplicate
// report. Per-file failures never abort the run; the only fatal error is
// a root that cannot be scanned at all.
func (e *Engine) Run(root string) (*Report, *RunInfo, error) {
	info := &RunInfo{}

	res, err := scan.Walk(root, scan.Options{
		MinSize:       e.opts.MinSize,
		Extensions:    e.opts.Extensions,
		IncludeHidden: e.opts.IncludeHidden,
	})
	if err != nil {
		return nil, nil, err
	}
	info.FilesScanned = len(res.Files)
	info.ScanFailures = res.Failures
	log.Debug("scan complete", "files", len(res.Files), "failures", len(res.Failures))

	buckets := bucketBySize(res.Files)
	if e.opts.SortPaths {
		sortBuckets(buckets)
	}
	buckets = e.partitionByQuickHash(buckets, info)

	for _, b := range buckets {
		info.Candidates += len(b.files)
	}
	e.total.Store(uint64(info.Candidates))
	log.Debug("bucketing complete", "buckets", len(buckets), "candidates", info.Candidates)

	hashed := e.hashCandidates(buckets, info)
	groups := groupByDigest(hashed)

	if e.opts.Paranoid {
		groups = verifyGroups(groups, info)
	}

	report := buildReport(groups)
	log.Debug("grouping complete",
		"groups", report.TotalGroups,
		"duplicates", report.TotalDuplicates,
		"wasted", report.WastedSpace)

	return report, info, nil
}
