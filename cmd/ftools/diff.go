// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"ftools-cli/internal/compare"
	"ftools-cli/pkg/fsutil"

	"github.com/spf13/cobra"
)

var (
	diffContent  bool
	diffDiffOnly bool

	diffCmd = &cobra.Command{
		Use:   "diff <dir1> <dir2>",
		Short: "Compare two directories for differences",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiff,
	}
)

func init() {
	f := diffCmd.Flags()
	f.BoolVarP(&diffContent, "content", "c", false, "compare content by hash, not just sizes")
	f.BoolVarP(&diffDiffOnly, "diff-only", "d", false, "show only differences")
}

func runDiff(cmd *cobra.Command, args []string) error {
	dirA, dirB := args[0], args[1]

	printStart("Comparing directories", "")
	fmt.Printf("  %s %s\n", WarningStyle.Render("A:"), CmdStyle.Render(dirA))
	fmt.Printf("  %s %s\n", WarningStyle.Render("B:"), CmdStyle.Render(dirB))
	fmt.Println()

	diff, err := compare.Run(dirA, dirB, compare.Options{Content: diffContent})
	if err != nil {
		return err
	}

	if diff.Changes() == 0 {
		printSuccess("Directories are identical")
		return nil
	}

	printHeader("COMPARISON RESULT")
	fmt.Println()
	printKV("Only in A", WarningStyle.Bold(true).Render(strconv.Itoa(len(diff.OnlyA))))
	printKV("Only in B", WarningStyle.Bold(true).Render(strconv.Itoa(len(diff.OnlyB))))
	printKV("Modified", ErrorStyle.Render(strconv.Itoa(len(diff.Modified))))
	if !diffDiffOnly {
		printKV("Identical", SuccessStyle.Bold(true).Render(strconv.Itoa(len(diff.Identical))))
	}
	fmt.Println()
	printRule(headerWidth)

	if len(diff.OnlyA) > 0 {
		printSection("Only in A")
		for _, e := range diff.OnlyA {
			fmt.Printf("  %s %s %s\n",
				ErrorStyle.Render(glyphCross),
				ErrorStyle.Render(e.RelPath),
				SubtitleStyle.Render("("+fsutil.FormatBytes(e.Size)+")"))
		}
	}

	if len(diff.OnlyB) > 0 {
		printSection("Only in B")
		for _, e := range diff.OnlyB {
			fmt.Printf("  %s %s %s\n",
				SuccessStyle.Render(glyphCheck),
				SuccessStyle.Render(e.RelPath),
				SubtitleStyle.Render("("+fsutil.FormatBytes(e.Size)+")"))
		}
	}

	if len(diff.Modified) > 0 {
		printSection("Modified")
		for _, m := range diff.Modified {
			var delta string
			switch {
			case m.SizeB > m.SizeA:
				delta = SuccessStyle.Render("+" + fsutil.FormatBytes(m.SizeB-m.SizeA))
			case m.SizeA > m.SizeB:
				delta = ErrorStyle.Render("-" + fsutil.FormatBytes(m.SizeA-m.SizeB))
			default:
				delta = WarningStyle.Render("content differs")
			}
			fmt.Printf("  %s %s [%s]\n",
				WarningStyle.Render(glyphBullet),
				WarningStyle.Render(m.RelPath),
				delta)
		}
	}

	fmt.Println()
	printRule(headerWidth)

	return nil
}
