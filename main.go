// SPDX-License-Identifier: MPL-2.0

// ftools is a CLI toolkit for local file operations: duplicate detection,
// search, bulk rename, disk-usage analysis, and directory comparison.
package main

import cmd "ftools-cli/cmd/ftools"

func main() {
	cmd.Execute()
}
