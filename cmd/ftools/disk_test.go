// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteDiskCSV(t *testing.T) {
	rows := []diskRow{
		{label: "src/app", size: 2048, count: 3},
		{label: "docs, misc", size: 512, count: 1},
	}

	t.Run("by directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "usage.csv")
		if err := writeDiskCSV(path, rows, false); err != nil {
			t.Fatalf("writeDiskCSV: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read csv: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if lines[0] != "directory,size_bytes,file_count" {
			t.Errorf("header = %q", lines[0])
		}
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want 3", len(lines))
		}
		// A label containing a comma must be quoted.
		if !strings.Contains(lines[2], `"docs, misc"`) {
			t.Errorf("comma label not quoted: %q", lines[2])
		}
	})

	t.Run("by type header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "types.csv")
		if err := writeDiskCSV(path, rows, true); err != nil {
			t.Fatalf("writeDiskCSV: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read csv: %v", err)
		}
		if !strings.HasPrefix(string(data), "extension,size_bytes,file_count") {
			t.Errorf("by-type header wrong: %q", strings.SplitN(string(data), "\n", 2)[0])
		}
	})
}
