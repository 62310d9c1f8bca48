// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RootNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ExportFailedId
	DeleteFailedId
	InvalidPatternId
	RenameConflictId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	rootNotFoundIssue = &Issue{
		id: RootNotFoundId,
		mdMsg: `
# Path not found!

The path you gave does not exist, or is a file rather than a directory.

## Things you can try:
- Check the path for typos
- Use an absolute path:
~~~
$ ftools dupes /home/user/Documents
~~~

- Verify the directory exists:
~~~
$ ls -ld /path/you/gave
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the ftools configuration file.

## Configuration file locations:
- Linux: ~/.config/ftools/config.toml
- macOS: ~/Library/Application Support/ftools/config.toml
- Windows: %APPDATA%\ftools\config.toml

## Things you can try:
- Create a default configuration:
~~~
$ ftools config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/ftools/config.toml
~~~

## Example configuration:
~~~toml
[dupes]
min_size = "1B"
algorithm = "sha256"
workers = 0

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	exportFailedIssue = &Issue{
		id: ExportFailedId,
		mdMsg: `
# Failed to write the report!

The duplicate report could not be written to the output path.

## Common causes:
- The output directory does not exist
- You lack write permission for the output path
- The disk is full

## Things you can try:
- Write to a directory you own:
~~~
$ ftools dupes . --output ~/dupes.json
~~~

- Create the output directory first
- Check free space with ` + "`ftools disk ~`",
	}

	deleteFailedIssue = &Issue{
		id: DeleteFailedId,
		mdMsg: `
# Some duplicates could not be deleted!

One or more duplicate files resisted removal. Everything that could be
deleted was deleted; the first file of every group is always kept.

## Common causes:
- Permission denied on the file or its directory
- The file vanished between detection and deletion
- The file lives on a read-only mount

## Things you can try:
- Re-run with verbose mode to see each failure:
~~~
$ ftools --verbose dupes . --delete
~~~

- Check permissions on the listed paths
- Re-run the scan; already-deleted files simply disappear from the report`,
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid pattern!

The regular expression you supplied does not compile.

## Common issues:
- Unbalanced brackets or parentheses
- A trailing backslash
- Shell expansion mangling the pattern (quote it!)

## Things you can try:
- Quote the pattern:
~~~
$ ftools search 'TODO|FIXME' .
~~~

- Escape literal special characters: ` + "`\\.` `\\(` `\\[`" + `
- Test the pattern at https://regex101.com (Golang flavor)`,
	}

	renameConflictIssue = &Issue{
		id: RenameConflictId,
		mdMsg: `
# Rename conflicts detected!

Applying this rename plan would overwrite files, so nothing was renamed.

## Conflict kinds:
- **already exists**: a target name is taken by a file not being renamed
- **duplicate target**: two files would be renamed to the same name

## Things you can try:
- Preview the plan and the conflicts:
~~~
$ ftools rename . 'IMG_(\d+)' 'photo_$1' --dry-run
~~~

- Make the replacement more specific so targets stay unique
- Rename or remove the files occupying the target names first`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- Reading a directory owned by another user
- Deleting files in a protected directory
- Writing a report to a read-only location

## Things you can try:
- Check file/directory permissions
- Run against a directory you own
- Unreadable subtrees are skipped and reported; the rest of the scan
  still completes`,
	}

	issues = map[Id]*Issue{
		rootNotFoundIssue.Id():     rootNotFoundIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		exportFailedIssue.Id():     exportFailedIssue,
		deleteFailedIssue.Id():     deleteFailedIssue,
		invalidPatternIssue.Id():   invalidPatternIssue,
		renameConflictIssue.Id():   renameConflictIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
