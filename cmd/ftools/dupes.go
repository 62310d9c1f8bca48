// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"ftools-cli/internal/config"
	"ftools-cli/internal/dedup"
	"ftools-cli/internal/hashing"
	"ftools-cli/internal/issue"
	"ftools-cli/internal/scan"
	"ftools-cli/pkg/fsutil"

	"github.com/spf13/cobra"
)

var (
	dupesMinSize    string
	dupesExtensions string
	dupesOutput     string
	dupesDelete     bool
	dupesAlgorithm  string
	dupesWorkers    int
	dupesParanoid   bool
	dupesSortPaths  bool

	dupesCmd = &cobra.Command{
		Use:   "dupes [path]",
		Short: "Find duplicate files by content hash",
		Long: `Find files with byte-identical content under a directory tree.

Files are first grouped by exact size; only groups that could contain a
duplicate are hashed, by a parallel worker pool. The first file found in
each duplicate group is the keep; --delete removes every later copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDupes,
	}
)

func init() {
	f := dupesCmd.Flags()
	f.StringVarP(&dupesMinSize, "min-size", "m", "", `minimum file size, e.g. "4KB" (default from config)`)
	f.StringVarP(&dupesExtensions, "extensions", "e", "", `file extension filter, e.g. "jpg,png,gif"`)
	f.StringVarP(&dupesOutput, "output", "o", "", "write the report to a JSON file")
	f.BoolVar(&dupesDelete, "delete", false, "delete duplicates (keep first occurrence)")
	f.StringVarP(&dupesAlgorithm, "algorithm", "a", "", "hash algorithm: sha256, sha512, md5 (default from config)")
	f.IntVarP(&dupesWorkers, "workers", "w", 0, "hash worker count (0 = one per CPU)")
	f.BoolVar(&dupesParanoid, "paranoid", false, "byte-compare group members before reporting")
	f.BoolVar(&dupesSortPaths, "sort-paths", false, "sort bucket paths so keep selection is path-stable")
}

func runDupes(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	opts, err := dupesOptions()
	if err != nil {
		return err
	}

	printStart("Scanning for duplicates in", root)

	engine := dedup.New(opts)
	stop := startHashProgress(engine)
	report, info, err := engine.Run(root)
	stop()
	if err != nil {
		rendered, _ := issue.Get(issue.RootNotFoundId).Render(issueStyle())
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	fmt.Printf("  %s files indexed\n", SuccessStyle.Render(strconv.Itoa(info.FilesScanned)))
	fmt.Printf("  %s candidates with matching sizes\n", WarningStyle.Render(strconv.Itoa(info.Candidates)))
	if verbose {
		if n := len(info.ScanFailures); n > 0 {
			printWarning(fmt.Sprintf("%d entries could not be read during the scan", n))
		}
		for _, fe := range info.HashFailures {
			printWarning(fmt.Sprintf("hash failed, excluded from grouping: %s (%v)", fe.Path, fe.Err))
		}
	}

	if report.TotalGroups == 0 {
		printSuccess("No duplicate files found")
		return nil
	}

	printHeader("DUPLICATE FILES REPORT")
	fmt.Println()
	printKV("Duplicate groups", strconv.Itoa(report.TotalGroups))
	printKV("Total duplicates", strconv.Itoa(report.TotalDuplicates))
	printKV("Wasted space", ErrorStyle.Render(fsutil.FormatBytes(report.WastedSpace)))
	fmt.Println()
	printRule(headerWidth)

	for _, g := range report.Groups {
		fmt.Println()
		fmt.Printf("  %s %s files, %s each\n",
			WarningStyle.Render(glyphBullet),
			WarningStyle.Bold(true).Render(strconv.Itoa(len(g.Files))),
			SubtitleStyle.Render(fsutil.FormatBytes(g.Size)))
		fmt.Printf("    %s\n", SubtitleStyle.Render("hash: "+shortDigest(g.Digest)))
		for i, file := range g.Files {
			if i == 0 {
				fmt.Printf("    %s [%s] %s\n",
					SuccessStyle.Render(glyphTee), SuccessStyle.Render("keep"), file)
			} else {
				fmt.Printf("    %s [%s] %s\n",
					ErrorStyle.Render(glyphTee), ErrorStyle.Render("dupe"), file)
			}
		}
	}

	fmt.Println()
	printRule(headerWidth)

	if n := len(info.CollisionSuspects); n > 0 {
		printWarning(fmt.Sprintf("%d files shared a digest but failed the byte compare; they were split out", n))
	}

	if dupesOutput != "" {
		if err := report.WriteJSON(dupesOutput); err != nil {
			rendered, _ := issue.Get(issue.ExportFailedId).Render(issueStyle())
			fmt.Fprint(os.Stderr, rendered)
			return err
		}
		printSuccess("Report saved to " + dupesOutput)
	}

	if dupesDelete {
		fmt.Println()
		printWarning("Deleting duplicates (keeping first occurrence)...")
		res := dedup.DeleteDuplicates(report)
		if len(res.Failures) > 0 {
			rendered, _ := issue.Get(issue.DeleteFailedId).Render(issueStyle())
			fmt.Fprint(os.Stderr, rendered)
			for _, fe := range res.Failures {
				printError(fmt.Sprintf("could not delete %s: %v", fe.Path, fe.Err))
			}
		}
		fmt.Println()
		printSuccess(fmt.Sprintf("Deleted %d files, freed %s", res.Deleted, fsutil.FormatBytes(res.FreedBytes)))
	}

	return nil
}

// dupesOptions folds config defaults under the explicit flags.
func dupesOptions() (dedup.Options, error) {
	opts := dedup.Options{
		Extensions: scan.ParseExtensions(dupesExtensions),
		Workers:    dupesWorkers,
		SortPaths:  dupesSortPaths,
		Paranoid:   dupesParanoid,
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	minSpec := dupesMinSize
	if minSpec == "" {
		minSpec = string(cfg.Dupes.MinSize)
	}
	if minSpec != "" {
		n, err := fsutil.ParseSize(minSpec)
		if err != nil {
			return opts, fmt.Errorf("invalid --min-size: %w", err)
		}
		opts.MinSize = n
	}

	algName := dupesAlgorithm
	if algName == "" {
		algName = string(cfg.Dupes.Algorithm)
	}
	if algName != "" {
		alg, err := hashing.ParseAlgorithm(algName)
		if err != nil {
			return opts, err
		}
		opts.Algorithm = alg
	}

	if opts.Workers == 0 {
		opts.Workers = int(cfg.Dupes.Workers)
	}

	return opts, nil
}

// startHashProgress polls the engine's hash counters onto stderr until the
// returned stop function is called. The line is redrawn in place and
// cleared on stop, so it never mixes with report output on stdout.
func startHashProgress(engine *dedup.Engine) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hashed, total := engine.Progress()
				if total == 0 {
					continue
				}
				pct := float64(hashed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r  %s %d/%d", ratioBar(pct, 20), hashed, total)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			fmt.Fprintf(os.Stderr, "\r%60s\r", "")
		})
	}
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	if len(d) > 16 {
		return d[:16]
	}
	return d
}

// issueStyle maps the configured color scheme onto a glamour style name.
func issueStyle() string {
	if cfg, err := config.Load(); err == nil {
		switch cfg.UI.ColorScheme {
		case config.ColorSchemeDark, config.ColorSchemeLight:
			return string(cfg.UI.ColorScheme)
		}
	}
	return "dark"
}
