// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"ftools-cli/internal/scan"
	"ftools-cli/pkg/fsutil"

	"github.com/spf13/cobra"
)

var (
	largeSize string
	largeTop  int

	largeCmd = &cobra.Command{
		Use:   "large [path]",
		Short: "Find files exceeding a size threshold",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLarge,
	}
)

func init() {
	f := largeCmd.Flags()
	f.StringVarP(&largeSize, "size", "s", "100MB", `minimum size, e.g. "100MB", "1GB"`)
	f.IntVarP(&largeTop, "top", "t", 50, "number of results")
}

func runLarge(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	minSize, err := fsutil.ParseSize(largeSize)
	if err != nil {
		return fmt.Errorf("invalid --size: %w", err)
	}

	printStart(fmt.Sprintf("Finding large files (>= %s) in", fsutil.FormatBytes(minSize)), root)
	fmt.Println()

	res, err := scan.Walk(root, scan.Options{MinSize: minSize})
	if err != nil {
		return err
	}

	files := res.Files
	sort.Slice(files, func(i, j int) bool { return files[i].Size > files[j].Size })
	if len(files) > largeTop {
		files = files[:largeTop]
	}

	if len(files) == 0 {
		printWarning(fmt.Sprintf("No files found >= %s", fsutil.FormatBytes(minSize)))
		return nil
	}

	var totalSize uint64
	for _, f := range files {
		totalSize += f.Size
	}
	maxSize := files[0].Size

	printInfo(fmt.Sprintf("Found %s files, total %s",
		SuccessStyle.Bold(true).Render(strconv.Itoa(len(files))),
		SuccessStyle.Bold(true).Render(fsutil.FormatBytes(totalSize))))
	fmt.Println()

	fmt.Printf("  %s  %s  %-20s  %s\n",
		SubtitleStyle.Render(fmt.Sprintf("%4s", "#")),
		CmdStyle.Bold(true).Render(fmt.Sprintf("%12s", "SIZE")),
		"",
		CmdStyle.Bold(true).Render("FILE"))
	printRule(80)

	for i, f := range files {
		fmt.Printf("  %s  %s  %s  %s\n",
			SubtitleStyle.Render(fmt.Sprintf("%4d", i+1)),
			WarningStyle.Bold(true).Render(fmt.Sprintf("%12s", fsutil.FormatBytes(f.Size))),
			sizeBar(f.Size, maxSize, 20),
			f.Path)
	}

	fmt.Println()
	printRule(80)
	fmt.Printf("%s %s files totaling %s\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(strconv.Itoa(len(files))),
		SuccessStyle.Bold(true).Render(fsutil.FormatBytes(totalSize)))

	return nil
}
