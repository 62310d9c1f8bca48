// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	emptyDirsOnly  bool
	emptyFilesOnly bool
	emptyDelete    bool

	emptyCmd = &cobra.Command{
		Use:   "empty [path]",
		Short: "Find empty files and directories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEmpty,
	}
)

func init() {
	f := emptyCmd.Flags()
	f.BoolVarP(&emptyDirsOnly, "dirs", "d", false, "find empty directories only")
	f.BoolVarP(&emptyFilesOnly, "files", "f", false, "find empty files only")
	f.BoolVar(&emptyDelete, "delete", false, "delete empty items")
}

func runEmpty(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	printStart("Finding empty items in", root)
	fmt.Println()

	findDirs := emptyDirsOnly || !emptyFilesOnly
	findFiles := emptyFilesOnly || !emptyDirsOnly

	var emptyFiles, emptyDirs, allDirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("empty walk error", "path", path, "err", err)
			return nil
		}
		if d.IsDir() {
			allDirs = append(allDirs, path)
			return nil
		}
		if !findFiles || !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err == nil && fi.Size() == 0 {
			emptyFiles = append(emptyFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	if findDirs {
		// Deepest first, so a directory that only contains empty
		// directories empties out as the delete pass ascends.
		sort.Slice(allDirs, func(i, j int) bool {
			return strings.Count(allDirs[i], string(os.PathSeparator)) >
				strings.Count(allDirs[j], string(os.PathSeparator))
		})
		for _, dir := range allDirs {
			if isDirEmpty(dir) {
				emptyDirs = append(emptyDirs, dir)
			}
		}
	}

	if len(emptyFiles) == 0 && len(emptyDirs) == 0 {
		printSuccess("No empty items found")
		return nil
	}

	if len(emptyFiles) > 0 {
		printSection(fmt.Sprintf("Empty Files (%d)", len(emptyFiles)))
		for _, file := range emptyFiles {
			fmt.Printf("  %s %s\n", WarningStyle.Render(glyphDot), file)
		}
		fmt.Println()
	}
	if len(emptyDirs) > 0 {
		printSection(fmt.Sprintf("Empty Directories (%d)", len(emptyDirs)))
		for _, dir := range emptyDirs {
			fmt.Printf("  %s %s\n", WarningStyle.Render(glyphDot), dir)
		}
		fmt.Println()
	}

	if emptyDelete {
		printWarning("Deleting empty items...")
		fmt.Println()

		var deletedFiles, deletedDirs, failures int
		for _, file := range emptyFiles {
			if err := os.Remove(file); err != nil {
				log.Warn("delete failed", "path", file, "err", err)
				failures++
				continue
			}
			deletedFiles++
			fmt.Printf("  %s %s\n", ErrorStyle.Render(glyphCross), SubtitleStyle.Render(file))
		}
		for _, dir := range emptyDirs {
			if err := os.Remove(dir); err != nil {
				log.Warn("delete failed", "path", dir, "err", err)
				failures++
				continue
			}
			deletedDirs++
			fmt.Printf("  %s %s\n", ErrorStyle.Render(glyphCross), SubtitleStyle.Render(dir))
		}

		fmt.Println()
		printRule(50)
		summary := fmt.Sprintf("%s Deleted: %s files, %s directories",
			ruleStyle.Render(glyphArrow),
			SuccessStyle.Bold(true).Render(fmt.Sprintf("%d", deletedFiles)),
			SuccessStyle.Bold(true).Render(fmt.Sprintf("%d", deletedDirs)))
		if failures > 0 {
			summary += ErrorStyle.Render(fmt.Sprintf(" (%d errors)", failures))
		}
		fmt.Println(summary)
	}

	return nil
}

// isDirEmpty reports whether the directory has no entries at all. An
// unreadable directory counts as non-empty so it is never deleted blind.
func isDirEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) == 0
}
