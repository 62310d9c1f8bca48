// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"ftools-cli/internal/issue"
	"ftools-cli/internal/scan"
	"ftools-cli/internal/search"

	"github.com/spf13/cobra"
)

var (
	searchExtensions  string
	searchIgnoreCase  bool
	searchFilesOnly   bool
	searchLineNumbers bool
	searchContext     int

	searchCmd = &cobra.Command{
		Use:   "search <pattern> [path]",
		Short: "Search for a text pattern in files (grep-like)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSearch,
	}
)

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchExtensions, "extensions", "e", "", `file extension filter, e.g. "go,md"`)
	f.BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "case insensitive search")
	f.BoolVarP(&searchFilesOnly, "files-only", "l", false, "show only filenames")
	f.BoolVarP(&searchLineNumbers, "line-numbers", "n", true, "show line numbers")
	f.IntVarP(&searchContext, "context", "C", 0, "context lines before/after each match")
}

func runSearch(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	root := "."
	if len(args) == 2 {
		root = args[1]
	}

	re, err := search.Compile(pattern, searchIgnoreCase)
	if err != nil {
		rendered, _ := issue.Get(issue.InvalidPatternId).Render(issueStyle())
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	printStart(fmt.Sprintf("Searching for '%s' in", WarningStyle.Render(pattern)), root)
	fmt.Println()

	res, err := search.Run(root, re, search.Options{
		Extensions: scan.ParseExtensions(searchExtensions),
		IgnoreCase: searchIgnoreCase,
		Context:    searchContext,
		FilesOnly:  searchFilesOnly,
	})
	if err != nil {
		return err
	}

	for _, file := range res.Files {
		if searchFilesOnly {
			fmt.Println(SuccessStyle.Render(file.Path))
			continue
		}

		fmt.Println(TitleStyle.Render(file.Path))
		for i, sec := range file.Sections {
			if i > 0 {
				fmt.Printf("  %s\n", SubtitleStyle.Render(glyphDot+glyphDot+glyphDot))
			}
			for _, line := range sec.Lines {
				prefix := ""
				if searchLineNumbers {
					prefix = SubtitleStyle.Render(fmt.Sprintf("%4d %s ", line.Num, vLine))
				}
				if line.Matched {
					fmt.Println(prefix + re.ReplaceAllStringFunc(line.Text, func(m string) string {
						return ErrorStyle.Render(m)
					}))
				} else {
					fmt.Println(prefix + SubtitleStyle.Render(line.Text))
				}
			}
		}
		fmt.Println()
	}

	printCount(res.TotalMatches, "match", "matches")
	fmt.Printf("%s found in %s files\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(strconv.Itoa(len(res.Files))))

	return nil
}
