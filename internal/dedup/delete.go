// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"os"

	"github.com/charmbracelet/log"
)

// DeleteResult summarizes a deletion pass.
type DeleteResult struct {
	Deleted    int
	FreedBytes uint64
	Failures   []FileError
}

// DeleteDuplicates removes every group member except the keep (index 0).
// Each removal is attempted independently: a failure is counted and the
// pass moves on, so one locked file cannot shield the rest of its group.
// The pass is not transactional — an interrupt leaves some dupes removed
// and the rest in place, with every keep untouched.
func DeleteDuplicates(rep *Report) DeleteResult {
	var res DeleteResult
	for _, g := range rep.Groups {
		for _, path := range g.Files[1:] {
			if err := os.Remove(path); err != nil {
				log.Warn("delete failed", "path", path, "err", err)
				res.Failures = append(res.Failures, FileError{Path: path, Err: err})
				continue
			}
			res.Deleted++
			res.FreedBytes += g.Size
		}
	}
	return res
}
