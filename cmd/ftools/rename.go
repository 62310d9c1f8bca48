// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"ftools-cli/internal/issue"
	"ftools-cli/internal/rename"
	"ftools-cli/internal/scan"

	"github.com/spf13/cobra"
)

var (
	renameFind       string
	renameReplace    string
	renameExtensions string
	renameDryRun     bool
	renameRecursive  bool

	renameCmd = &cobra.Command{
		Use:   "rename [path]",
		Short: "Bulk rename files with a regex pattern",
		Long: `Bulk rename files by regex substitution on the base name.

The default is a dry run: planned renames and conflicts are shown but
nothing is touched. Pass --dry-run=false to apply. A live run aborts if
any conflict is detected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRename,
	}
)

func init() {
	f := renameCmd.Flags()
	f.StringVarP(&renameFind, "find", "f", "", "search pattern (regex)")
	f.StringVarP(&renameReplace, "replace", "r", "", "replacement (supports ${1}, ${2} for groups)")
	f.StringVarP(&renameExtensions, "extensions", "e", "", `file extension filter, e.g. "jpg,png"`)
	f.BoolVar(&renameDryRun, "dry-run", true, "show changes without applying them")
	f.BoolVarP(&renameRecursive, "recursive", "R", false, "rename in subdirectories too")

	_ = renameCmd.MarkFlagRequired("find")
	_ = renameCmd.MarkFlagRequired("replace")
}

func runRename(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	re, err := regexp.Compile(renameFind)
	if err != nil {
		rendered, _ := issue.Get(issue.InvalidPatternId).Render(issueStyle())
		fmt.Fprint(os.Stderr, rendered)
		return fmt.Errorf("invalid pattern: %w", err)
	}

	printStart("Bulk rename in", root)
	fmt.Printf("  %s '%s' %s '%s'\n",
		SubtitleStyle.Render("Pattern:"),
		WarningStyle.Render(renameFind),
		SubtitleStyle.Render(glyphArrow),
		SuccessStyle.Render(renameReplace))
	mode := WarningStyle.Render("DRY RUN (preview only)")
	if !renameDryRun {
		mode = ErrorStyle.Render("LIVE (will rename files)")
	}
	fmt.Printf("  %s %s\n\n", SubtitleStyle.Render("Mode:"), mode)

	plan, err := rename.NewPlan(root, re, renameReplace, rename.Options{
		Extensions: scan.ParseExtensions(renameExtensions),
		Recursive:  renameRecursive,
	})
	if err != nil {
		return err
	}

	if len(plan.Changes) == 0 {
		printWarning("No files match the pattern")
		return nil
	}

	if len(plan.Conflicts) > 0 {
		printSection("Conflicts Detected")
		for _, c := range plan.Conflicts {
			fmt.Printf("  %s %s (%s)\n",
				ErrorStyle.Render(glyphCross), c.Path, ErrorStyle.Render(string(c.Reason)))
		}
		fmt.Println()
		if !renameDryRun {
			rendered, _ := issue.Get(issue.RenameConflictId).Render(issueStyle())
			fmt.Fprint(os.Stderr, rendered)
			printError("Aborting due to conflicts")
			return &ExitError{Code: 1, Err: fmt.Errorf("rename aborted: %d conflicts", len(plan.Conflicts))}
		}
	}

	printSection(fmt.Sprintf("Changes (%d)", len(plan.Changes)))
	fmt.Println()
	for _, c := range plan.Changes {
		fmt.Printf("  %s %s  %s  %s\n",
			SubtitleStyle.Render(glyphBullet),
			ErrorStyle.Render(filepath.Base(c.OldPath)),
			SubtitleStyle.Render(glyphArrow),
			SuccessStyle.Render(filepath.Base(c.NewPath)))
	}

	if renameDryRun {
		fmt.Println()
		printInfo("Run with --dry-run=false to apply changes")
		return nil
	}

	fmt.Println()
	printSection("Executing")
	res := plan.Apply()
	for _, f := range res.Failures {
		fmt.Printf("  %s %s (%s)\n",
			ErrorStyle.Render(glyphCross),
			filepath.Base(f.OldPath),
			ErrorStyle.Render(f.Err.Error()))
	}

	fmt.Println()
	printRule(50)
	fmt.Printf("%s %s renamed, %s failed\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(fmt.Sprintf("%d", res.Renamed)),
		ErrorStyle.Render(fmt.Sprintf("%d", len(res.Failures))))

	return nil
}
