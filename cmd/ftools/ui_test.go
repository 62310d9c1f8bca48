// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
)

func TestPadDots(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Total files ", 16, "Total files ...."},
		{"exactly sixteen.", 16, "exactly sixteen."},
		{"longer than the width", 5, "longer than the width"},
	}

	for _, tt := range tests {
		if got := padDots(tt.in, tt.width); got != tt.want {
			t.Errorf("padDots(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRatioBar(t *testing.T) {
	bar := ratioBar(50, 10)
	if !strings.Contains(bar, "█") || !strings.Contains(bar, "░") {
		t.Errorf("half-full bar missing fill or rest glyphs: %q", bar)
	}

	full := ratioBar(100, 10)
	if strings.Contains(full, "░") {
		t.Errorf("full bar should have no empty cells: %q", full)
	}
	if got := strings.Count(full, "█"); got != 10 {
		t.Errorf("full bar has %d filled cells, want 10", got)
	}

	// Out-of-range percentages clamp instead of panicking.
	if over := ratioBar(250, 10); strings.Count(over, "█") != 10 {
		t.Errorf("overflowing bar not clamped: %q", over)
	}
	if under := ratioBar(-5, 10); strings.Count(under, "█") != 0 {
		t.Errorf("negative bar not clamped: %q", under)
	}
}

func TestSizeBar(t *testing.T) {
	bar := sizeBar(50, 100, 20)
	if got := strings.Count(bar, "━"); got != 10 {
		t.Errorf("bar fill = %d cells, want 10", got)
	}

	// A nonzero value always shows at least one cell, so small files do
	// not render as completely absent.
	tiny := sizeBar(1, 1<<30, 20)
	if got := strings.Count(tiny, "━"); got != 1 {
		t.Errorf("tiny bar fill = %d cells, want 1", got)
	}

	zero := sizeBar(0, 100, 20)
	if strings.Contains(zero, "━") {
		t.Errorf("zero bar should be empty: %q", zero)
	}
}

func TestShortDigest(t *testing.T) {
	long := "0123456789abcdef0123456789abcdef"
	if got := shortDigest(long); got != "0123456789abcdef" {
		t.Errorf("shortDigest(long) = %q", got)
	}
	if got := shortDigest("abc"); got != "abc" {
		t.Errorf("shortDigest(short) = %q", got)
	}
}
