// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box-drawing characters and icons shared by the report renderers. Plain
// symbols only, no emojis.
const (
	hLine = "─"
	vLine = "│"

	glyphBullet = "•"
	glyphTee    = "├"
	glyphArrow  = "➜"
	glyphCheck  = "v"
	glyphCross  = "x"
	glyphDot    = "·"
	glyphInfo   = "i"
	glyphWarn   = "!"
)

const (
	// headerWidth is the fixed outer width of header boxes and report rules.
	headerWidth = 60
	// kvKeyWidth is the dot-leader column width of key/value rows.
	kvKeyWidth = 24
)

// File-local styles derived from the shared palette.
var (
	boxStyle      = lipgloss.NewStyle().Foreground(ColorHighlight)
	boxTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	ruleStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	kvKeyStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	barFillStyle  = lipgloss.NewStyle().Foreground(ColorHighlight)
	barRestStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// printHeader draws a boxed report title, centered in a fixed-width frame.
func printHeader(title string) {
	inner := headerWidth - 2
	pad := inner - lipgloss.Width(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left

	fmt.Println()
	fmt.Println(boxStyle.Render("┌" + strings.Repeat(hLine, inner) + "┐"))
	fmt.Println(boxStyle.Render(vLine) +
		strings.Repeat(" ", left) +
		boxTitleStyle.Render(title) +
		strings.Repeat(" ", right) +
		boxStyle.Render(vLine))
	fmt.Println(boxStyle.Render("└" + strings.Repeat(hLine, inner) + "┘"))
}

// printSection draws a short titled divider.
func printSection(title string) {
	tail := 45 - lipgloss.Width(title)
	if tail < 0 {
		tail = 0
	}
	fmt.Println()
	fmt.Printf("%s %s %s\n",
		ruleStyle.Render(strings.Repeat(hLine, 3)),
		WarningStyle.Bold(true).Render(title),
		ruleStyle.Render(strings.Repeat(hLine, tail)))
}

// printRule draws a plain horizontal rule.
func printRule(width int) {
	fmt.Println(ruleStyle.Render(strings.Repeat(hLine, width)))
}

// printStart announces an operation and its target.
func printStart(operation, target string) {
	fmt.Printf("%s %s %s\n",
		CmdStyle.Render(glyphArrow), operation, WarningStyle.Render(target))
}

func printSuccess(message string) {
	fmt.Printf("%s %s\n",
		SuccessStyle.Bold(true).Render(glyphCheck), SuccessStyle.Render(message))
}

func printError(message string) {
	fmt.Printf("%s %s\n",
		ErrorStyle.Render(glyphCross), ErrorStyle.Render(message))
}

func printWarning(message string) {
	fmt.Printf("%s %s\n",
		WarningStyle.Bold(true).Render(glyphWarn), WarningStyle.Render(message))
}

func printInfo(message string) {
	fmt.Printf("%s %s\n", CmdStyle.Bold(true).Render(glyphInfo), message)
}

// printKV prints an indented key/value row with dot leaders.
func printKV(key, value string) {
	fmt.Printf("  %s %s\n", kvKeyStyle.Render(padDots(key+" ", kvKeyWidth)), value)
}

// printCount prints the trailing result-count line of a report.
func printCount(count int, singular, plural string) {
	word := singular
	if count != 1 {
		word = plural
	}
	fmt.Printf("\n%s %s %s\n",
		ruleStyle.Render(glyphArrow),
		SuccessStyle.Bold(true).Render(fmt.Sprintf("%d", count)),
		ruleStyle.Render(word))
}

// padDots right-pads s with dot leaders to the given rune width.
func padDots(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(".", n)
	}
	return s
}

// ratioBar renders a percentage as a fixed-width block bar: │███░░░░│.
func ratioBar(percentage float64, width int) string {
	filled := int(percentage / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return ruleStyle.Render(vLine) +
		barFillStyle.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", width-filled)) +
		ruleStyle.Render(vLine)
}

// sizeBar renders value scaled against max as a line bar: ━━━────.
func sizeBar(value, max uint64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(float64(value) / float64(max) * float64(width))
	}
	if filled > width {
		filled = width
	}
	if filled < 1 && value > 0 {
		filled = 1
	}
	return barFillStyle.Render(strings.Repeat("━", filled)) +
		barRestStyle.Render(strings.Repeat("─", width-filled))
}
