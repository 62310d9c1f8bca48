// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"ftools-cli/pkg/fsutil"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	listSort      string
	listReverse   bool
	listRecursive bool
	listPattern   string
	listLong      bool

	listCmd = &cobra.Command{
		Use:   "list [path]",
		Short: "List files with sorting and filtering",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}
)

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listSort, "sort", "s", "name", "sort by: name, size, date, ext")
	f.BoolVarP(&listReverse, "reverse", "r", false, "reverse sort order")
	f.BoolVarP(&listRecursive, "recursive", "R", false, "recursive listing")
	f.StringVarP(&listPattern, "pattern", "p", "", `show only names matching a glob, e.g. "*.go"`)
	f.BoolVarP(&listLong, "long", "l", false, "long format with size and modification time")
}

type listEntry struct {
	name     string
	size     uint64
	modified time.Time
	ext      string
	isDir    bool
}

func runList(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	if listPattern != "" {
		// Validate the glob up front so a bad pattern fails loudly instead
		// of silently matching nothing.
		if _, err := path.Match(listPattern, "probe"); err != nil {
			return fmt.Errorf("invalid --pattern %q: %w", listPattern, err)
		}
	}

	entries, err := collectListEntries(root)
	if err != nil {
		return err
	}
	sortListEntries(entries)

	if listLong {
		fmt.Printf("  %s  %s  %s\n",
			CmdStyle.Bold(true).Render(fmt.Sprintf("%12s", "SIZE")),
			CmdStyle.Bold(true).Render(fmt.Sprintf("%19s", "MODIFIED")),
			CmdStyle.Bold(true).Render("NAME"))
		printRule(60)

		for _, e := range entries {
			sizeStr := fmt.Sprintf("%12s", fsutil.FormatBytes(e.size))
			name := e.name
			if e.isDir {
				sizeStr = CmdStyle.Render(fmt.Sprintf("%12s", "<DIR>"))
				name = CmdStyle.Bold(true).Render(e.name + "/")
			}
			fmt.Printf("  %s  %s  %s\n",
				sizeStr,
				SubtitleStyle.Render(e.modified.Format("2006-01-02 15:04:05")),
				name)
		}
	} else {
		printListColumns(entries)
	}

	fmt.Printf("\n%s %s items\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(strconv.Itoa(len(entries))))

	return nil
}

func collectListEntries(root string) ([]listEntry, error) {
	var entries []listEntry

	record := func(d fs.DirEntry) {
		name := d.Name()
		if listPattern != "" {
			if ok, _ := path.Match(listPattern, name); !ok {
				return
			}
		}

		e := listEntry{name: name, isDir: d.IsDir()}
		if fi, err := d.Info(); err == nil {
			e.size = uint64(fi.Size())
			e.modified = fi.ModTime()
		}
		if !e.isDir {
			e.ext = fsutil.Extension(name)
		}
		entries = append(entries, e)
	}

	if listRecursive {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Debug("list walk error", "path", p, "err", err)
				return nil
			}
			if p == root {
				return nil
			}
			record(d)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
		return entries, nil
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}
	for _, d := range dirEntries {
		record(d)
	}
	return entries, nil
}

func sortListEntries(entries []listEntry) {
	less := func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch listSort {
		case "size":
			return a.size > b.size
		case "date":
			return a.modified.After(b.modified)
		case "ext":
			return a.ext < b.ext
		default:
			// Name sort groups directories first, like ls does by default
			// on Windows and most graphical file managers.
			if a.isDir != b.isDir {
				return a.isDir
			}
			return strings.ToLower(a.name) < strings.ToLower(b.name)
		}
	}
	if listReverse {
		sort.SliceStable(entries, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(entries, less)
	}
}

// printListColumns packs names into fixed-width columns, assuming an
// 80-column terminal.
func printListColumns(entries []listEntry) {
	const termWidth = 80

	maxNameLen := 20
	for _, e := range entries {
		if n := len([]rune(e.name)); n > maxNameLen {
			maxNameLen = n
		}
	}
	colWidth := maxNameLen + 4
	if colWidth > 30 {
		colWidth = 30
	}
	cols := termWidth / colWidth
	if cols < 1 {
		cols = 1
	}

	for i := 0; i < len(entries); i += cols {
		fmt.Print("  ")
		for _, e := range entries[i:min(i+cols, len(entries))] {
			pad := colWidth - len([]rune(e.name))
			if e.isDir {
				pad--
				fmt.Print(CmdStyle.Bold(true).Render(e.name + "/"))
			} else {
				fmt.Print(e.name)
			}
			if pad > 0 {
				fmt.Print(strings.Repeat(" ", pad))
			}
		}
		fmt.Println()
	}
}
