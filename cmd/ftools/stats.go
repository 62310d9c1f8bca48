// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"

	"ftools-cli/internal/scan"
	"ftools-cli/pkg/fsutil"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	statsHidden bool

	statsCmd = &cobra.Command{
		Use:   "stats [path]",
		Short: "Display file statistics for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
)

func init() {
	statsCmd.Flags().BoolVar(&statsHidden, "hidden", false, "include hidden files")
}

func runStats(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	printStart("Analyzing", root)
	fmt.Println()

	var (
		totalFiles, totalDirs int
		totalSize, maxSize    uint64
		maxFile               string
		extCount              = make(map[string]int)
		extSize               = make(map[string]uint64)
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("stats walk error", "path", path, "err", err)
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && scan.ShouldSkip(name, true, statsHidden) {
				return filepath.SkipDir
			}
			if path != root {
				totalDirs++
			}
			return nil
		}
		if !d.Type().IsRegular() || scan.ShouldSkip(name, false, statsHidden) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}

		size := uint64(fi.Size())
		totalFiles++
		totalSize += size
		if size > maxSize {
			maxSize = size
			maxFile = path
		}

		ext := fsutil.Extension(name)
		if ext == "" {
			ext = "(no ext)"
		}
		extCount[ext]++
		extSize[ext] += size
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	var avgSize uint64
	if totalFiles > 0 {
		avgSize = totalSize / uint64(totalFiles)
	}

	printHeader("DIRECTORY STATISTICS")
	fmt.Println()

	printSection("Overview")
	printKV("Total files", strconv.Itoa(totalFiles))
	printKV("Total directories", strconv.Itoa(totalDirs))
	printKV("Total size", SuccessStyle.Bold(true).Render(fsutil.FormatBytes(totalSize)))
	printKV("Average file size", fsutil.FormatBytes(avgSize))

	if maxFile != "" {
		fmt.Println()
		printSection("Largest File")
		printKV("Size", ErrorStyle.Render(fsutil.FormatBytes(maxSize)))
		printKV("Path", maxFile)
	}

	fmt.Println()
	printSection("Top Extensions by Count")
	fmt.Println()
	for _, ext := range topExtensionsByCount(extCount) {
		pct := float64(extCount[ext]) / float64(totalFiles) * 100
		fmt.Printf("  %s %6d %5.1f%% %s\n",
			extLabel(ext), extCount[ext], pct, ratioBar(pct, 15))
	}

	fmt.Println()
	printSection("Top Extensions by Size")
	fmt.Println()
	for _, ext := range topExtensionsBySize(extSize) {
		pct := float64(extSize[ext]) / float64(totalSize) * 100
		fmt.Printf("  %s %10s %5.1f%% %s\n",
			extLabel(ext), fsutil.FormatBytes(extSize[ext]), pct, ratioBar(pct, 15))
	}

	fmt.Println()
	printRule(50)

	return nil
}

// extLabel renders an extension right-aligned, dimming the no-extension
// placeholder.
func extLabel(ext string) string {
	if ext == "(no ext)" {
		return SubtitleStyle.Render(fmt.Sprintf("%8s", ext))
	}
	return CmdStyle.Render(fmt.Sprintf("%8s", "."+ext))
}

func topExtensionsByCount(counts map[string]int) []string {
	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if counts[exts[i]] != counts[exts[j]] {
			return counts[exts[i]] > counts[exts[j]]
		}
		return exts[i] < exts[j]
	})
	if len(exts) > 10 {
		exts = exts[:10]
	}
	return exts
}

func topExtensionsBySize(sizes map[string]uint64) []string {
	exts := make([]string, 0, len(sizes))
	for ext := range sizes {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if sizes[exts[i]] != sizes[exts[j]] {
			return sizes[exts[i]] > sizes[exts[j]]
		}
		return exts[i] < exts[j]
	})
	if len(exts) > 10 {
		exts = exts[:10]
	}
	return exts
}
