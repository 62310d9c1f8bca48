// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsReservedFileName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"con", true},
		{"CON", true},
		{"con.txt", true},
		{"Com1.log", true},
		{"lpt9", true},
		{"console", false},
		{"com10", false},
		{"report.txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReservedFileName(tt.name); got != tt.want {
				t.Errorf("IsReservedFileName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
