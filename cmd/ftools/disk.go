// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"ftools-cli/internal/scan"
	"ftools-cli/pkg/fsutil"

	"github.com/spf13/cobra"
)

var (
	diskTop    int
	diskByType bool
	diskHidden bool
	diskMin    string
	diskCSV    string

	diskCmd = &cobra.Command{
		Use:   "disk [path]",
		Short: "Analyze disk usage by directory or file type",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDisk,
	}
)

func init() {
	f := diskCmd.Flags()
	f.IntVarP(&diskTop, "top", "t", 20, "number of top items to show")
	f.BoolVarP(&diskByType, "by-type", "b", false, "group by file extension instead of directory")
	f.BoolVar(&diskHidden, "hidden", false, "include hidden files")
	f.StringVar(&diskMin, "min", "", `minimum aggregate size to display, e.g. "1MB"`)
	f.StringVar(&diskCSV, "csv", "", "export the table to a CSV file")
}

// diskRow is one aggregated line of the usage table: a directory or an
// extension with its total size and file count.
type diskRow struct {
	label string
	size  uint64
	count int
}

func runDisk(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	var minSize uint64
	if diskMin != "" {
		n, err := fsutil.ParseSize(diskMin)
		if err != nil {
			return fmt.Errorf("invalid --min: %w", err)
		}
		minSize = n
	}

	printStart("Analyzing disk usage in", root)
	fmt.Println()

	res, err := scan.Walk(root, scan.Options{IncludeHidden: diskHidden})
	if err != nil {
		return err
	}

	groups := make(map[string]*diskRow)
	var totalSize uint64
	for _, rec := range res.Files {
		totalSize += rec.Size

		label := filepath.Dir(rec.Path)
		if diskByType {
			label = fsutil.Extension(rec.Path)
			if label == "" {
				label = "(no ext)"
			}
		}
		row, ok := groups[label]
		if !ok {
			row = &diskRow{label: label}
			groups[label] = row
		}
		row.size += rec.Size
		row.count++
	}
	totalFiles := len(res.Files)

	rows := make([]diskRow, 0, len(groups))
	for _, row := range groups {
		if row.size >= minSize {
			rows = append(rows, *row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].size > rows[j].size })
	if len(rows) > diskTop {
		rows = rows[:diskTop]
	}

	if len(rows) == 0 {
		printWarning("Nothing found matching criteria")
		return nil
	}
	maxSize := rows[0].size

	if diskByType {
		printHeader("DISK USAGE BY FILE TYPE")
	} else {
		printHeader("DISK USAGE BY DIRECTORY")
	}
	fmt.Println()
	printInfo(fmt.Sprintf("Total: %s in %s files",
		SuccessStyle.Bold(true).Render(fsutil.FormatBytes(totalSize)),
		SuccessStyle.Render(strconv.Itoa(totalFiles))))
	fmt.Println()

	nameHeader := "DIRECTORY"
	if diskByType {
		nameHeader = "EXT"
	}
	fmt.Printf("  %s  %s  %-22s%s\n",
		CmdStyle.Bold(true).Render(fmt.Sprintf("%12s", "SIZE")),
		CmdStyle.Bold(true).Render(fmt.Sprintf("%6s", "FILES")),
		"",
		CmdStyle.Bold(true).Render(nameHeader))
	printRule(80)

	for _, row := range rows {
		pct := float64(row.size) / float64(totalSize) * 100
		label := row.label
		if diskByType && label != "(no ext)" {
			label = "." + label
		}
		fmt.Printf("  %s  %s  %s %5.1f%%  %s\n",
			WarningStyle.Bold(true).Render(fmt.Sprintf("%12s", fsutil.FormatBytes(row.size))),
			fmt.Sprintf("%6d", row.count),
			sizeBar(row.size, maxSize, 20),
			pct,
			SubtitleStyle.Render(label))
	}
	printRule(80)

	if diskCSV != "" {
		if err := writeDiskCSV(diskCSV, rows, diskByType); err != nil {
			return err
		}
		printSuccess("Exported to " + diskCSV)
	}

	return nil
}

func writeDiskCSV(path string, rows []diskRow, byType bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"directory", "size_bytes", "file_count"}
	if byType {
		header[0] = "extension"
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, row := range rows {
		record := []string{row.label, strconv.FormatUint(row.size, 10), strconv.Itoa(row.count)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}
