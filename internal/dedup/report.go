// SPDX-License-Identifier: MPL-2.0

package dedup

import (
	"encoding/json"
	"fmt"
	"os"
)

type (
	// Group is a confirmed duplicate set: two or more files of identical
	// size and identical digest. Files[0] is the keep (first discovered);
	// every later member is a dupe. The field set is the machine-readable
	// export contract, so names here are stable.
	Group struct {
		Digest string   `json:"hash"`
		Size   uint64   `json:"size"`
		Files  []string `json:"files"`
	}

	// Report aggregates a run's duplicate sets. It is built once after
	// grouping and never mutated.
	Report struct {
		TotalGroups     int     `json:"total_groups"`
		TotalDuplicates int     `json:"total_duplicates"`
		WastedSpace     uint64  `json:"wasted_space"`
		Groups          []Group `json:"groups"`
	}
)

// buildReport folds aggregate statistics over the surviving groups.
// wasted_space counts every copy beyond the first, in exact bytes.
func buildReport(groups []Group) *Report {
	rep := &Report{Groups: groups}
	if rep.Groups == nil {
		rep.Groups = []Group{}
	}
	for _, g := range groups {
		extra := len(g.Files) - 1
		rep.TotalGroups++
		rep.TotalDuplicates += extra
		rep.WastedSpace += g.Size * uint64(extra)
	}
	return rep
}

// WriteJSON serializes the report to path as indented JSON. Byte counts
// are exact integers, never rounded.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
