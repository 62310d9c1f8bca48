// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"ftools-cli/internal/scan"
	"ftools-cli/pkg/fsutil"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	recentWithin string
	recentTop    int

	recentCmd = &cobra.Command{
		Use:   "recent [path]",
		Short: "Find recently modified files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecent,
	}
)

func init() {
	f := recentCmd.Flags()
	f.StringVarP(&recentWithin, "within", "w", "24h", `time range, e.g. "1h", "24h", "7d"`)
	f.IntVarP(&recentTop, "top", "t", 50, "number of results")
}

type recentFile struct {
	path     string
	size     uint64
	modified time.Time
}

func runRecent(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	within, err := fsutil.ParseDuration(recentWithin)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-within)

	printStart(fmt.Sprintf("Finding files modified within %s in", recentWithin), root)
	fmt.Println()

	var files []recentFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("recent walk error", "path", path, "err", err)
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && scan.ShouldSkip(name, true, false) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || scan.ShouldSkip(name, false, false) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		if fi.ModTime().After(cutoff) {
			files = append(files, recentFile{path: path, size: uint64(fi.Size()), modified: fi.ModTime()})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modified.After(files[j].modified) })
	if len(files) > recentTop {
		files = files[:recentTop]
	}

	if len(files) == 0 {
		printWarning(fmt.Sprintf("No files modified within %s", recentWithin))
		return nil
	}

	printInfo(fmt.Sprintf("Found %s files", SuccessStyle.Bold(true).Render(strconv.Itoa(len(files)))))
	fmt.Println()

	fmt.Printf("  %s  %s  %s\n",
		CmdStyle.Bold(true).Render(fmt.Sprintf("%19s", "MODIFIED")),
		CmdStyle.Bold(true).Render(fmt.Sprintf("%12s", "SIZE")),
		CmdStyle.Bold(true).Render("FILE"))
	printRule(80)

	now := time.Now()
	for _, f := range files {
		fmt.Printf("  %s %s  %s  %s\n",
			SubtitleStyle.Render(f.modified.Format("2006-01-02 15:04")),
			WarningStyle.Render("("+relativeTime(now.Sub(f.modified))+")"),
			SubtitleStyle.Render(fmt.Sprintf("%12s", fsutil.FormatBytes(f.size))),
			f.path)
	}

	fmt.Println()
	printRule(80)
	fmt.Printf("%s %s recent files\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(strconv.Itoa(len(files))))

	return nil
}

// relativeTime renders an elapsed duration as "5m ago" style text.
func relativeTime(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
