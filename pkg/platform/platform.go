// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes cross-platform concerns: runtime.GOOS
// string constants and the Windows reserved-name rules that make some
// file names unusable as rename targets.
package platform

import "strings"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// windowsReservedNames are base names (case-insensitive, extension
// ignored) that Windows refuses to create as regular files.
var windowsReservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// IsReservedFileName reports whether name (a base name, not a path) is
// reserved on Windows. The check applies regardless of the current OS so
// tools can warn about names that would break a tree copied to Windows.
func IsReservedFileName(name string) bool {
	base := strings.ToLower(name)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	_, reserved := windowsReservedNames[base]
	return reserved
}
