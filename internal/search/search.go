// SPDX-License-Identifier: MPL-2.0

// Package search implements line-oriented regex search over a directory
// tree. It produces structured results (matched lines plus surrounding
// context grouped into display sections) and leaves all rendering to the
// caller.
package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/charmbracelet/log"

	"ftools-cli/internal/scan"
)

// binarySniffLen is how many leading bytes are inspected for a NUL byte
// when deciding whether a file is binary.
const binarySniffLen = 512

type (
	// Options controls a search run.
	Options struct {
		// Extensions is the lowercase extension allow-list (no dot).
		Extensions []string
		// IgnoreCase compiles the pattern case-insensitively.
		IgnoreCase bool
		// Context is the number of lines shown before and after each match.
		Context int
		// FilesOnly stops scanning a file at its first match; results carry
		// no line content.
		FilesOnly bool
		// IncludeHidden searches hidden files and directories too.
		IncludeHidden bool
	}

	// Line is one displayed line of a result section. Matched marks the
	// lines the pattern actually hit, as opposed to surrounding context.
	Line struct {
		Num     int // 1-based
		Text    string
		Matched bool
	}

	// Section is a contiguous run of displayed lines. Sections within a
	// file are separated by at least one undisplayed line.
	Section struct {
		Lines []Line
	}

	// FileResult holds everything found in one file.
	FileResult struct {
		Path       string
		MatchCount int
		Sections   []Section
	}

	// Result aggregates a whole run.
	Result struct {
		Files        []FileResult
		TotalMatches int
	}
)

// Compile builds the search regexp, applying case-insensitivity via the
// (?i) flag so the pattern string itself stays untouched.
func Compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return re, nil
}

// Run walks root and searches every text file that passes the filters.
// Binary files (NUL byte in the first 512 bytes) and unreadable files are
// skipped silently, matching grep-like tools.
func Run(root string, re *regexp.Regexp, opts Options) (*Result, error) {
	walked, err := scan.Walk(root, scan.Options{
		Extensions:    opts.Extensions,
		IncludeHidden: opts.IncludeHidden,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, rec := range walked.Files {
		binary, err := IsBinary(rec.Path)
		if err != nil || binary {
			continue
		}

		fr, err := searchFile(rec.Path, re, opts)
		if err != nil {
			log.Debug("search skipped file", "path", rec.Path, "err", err)
			continue
		}
		if fr.MatchCount == 0 {
			continue
		}
		res.Files = append(res.Files, fr)
		res.TotalMatches += fr.MatchCount
	}
	return res, nil
}

// IsBinary sniffs the first bytes of the file for a NUL byte.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, binarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	for _, b := range buf[:n] {
		if b == 0 {
			return true, nil
		}
	}
	return false, nil
}

func searchFile(path string, re *regexp.Regexp, opts Options) (FileResult, error) {
	fr := FileResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return fr, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if opts.FilesOnly && re.MatchString(line) {
			fr.MatchCount++
			return fr, nil
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return FileResult{Path: path}, err
	}
	if opts.FilesOnly {
		return fr, nil
	}

	matched := make(map[int]bool)
	for i, line := range lines {
		if re.MatchString(line) {
			matched[i] = true
			fr.MatchCount++
		}
	}
	if fr.MatchCount == 0 {
		return fr, nil
	}

	// Merge per-match context windows into contiguous display sections.
	display := make([]bool, len(lines))
	for i := range lines {
		if !matched[i] {
			continue
		}
		start := i - opts.Context
		if start < 0 {
			start = 0
		}
		end := i + opts.Context
		if end >= len(lines) {
			end = len(lines) - 1
		}
		for j := start; j <= end; j++ {
			display[j] = true
		}
	}

	var cur *Section
	for i := range lines {
		if !display[i] {
			cur = nil
			continue
		}
		if cur == nil {
			fr.Sections = append(fr.Sections, Section{})
			cur = &fr.Sections[len(fr.Sections)-1]
		}
		cur.Lines = append(cur.Lines, Line{Num: i + 1, Text: lines[i], Matched: matched[i]})
	}

	return fr, nil
}
