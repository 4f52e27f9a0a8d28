// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a help page.
type Id int

const (
	RootNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ManifestInvalidId
	CommandNameTooLongId
	UnknownCommandId
	NoEntryPointId
	AmbiguousCommandId
	CommandFailedId
	ScriptSyntaxErrorId
)

type (
	MarkdownMsg string

	// Issue is a help page with a stable slug usable on the command line.
	Issue struct {
		id    Id
		slug  string
		title string
		mdMsg MarkdownMsg
	}
)

func (i *Issue) Id() Id                   { return i.id }
func (i *Issue) Slug() string             { return i.slug }
func (i *Issue) Title() string            { return i.title }
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the page as terminal markdown using a glamour style name or
// style file path.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	rootNotFoundIssue = &Issue{
		id:    RootNotFoundId,
		slug:  "root-not-found",
		title: "Discovery root missing",
		mdMsg: `
# The discovery root does not exist

grouprun looks for command groups below a single root directory. That
directory is missing or is not a directory, so no commands are available.

## Things you can try
- Pass the root explicitly:
~~~
$ grouprun --root ./commands
~~~
- Set it in your configuration:
~~~cue
root: "/path/to/commands"
~~~
- Or through the environment: ` + "`GROUPRUN_ROOT=/path/to/commands`",
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedId,
		slug:  "config-invalid",
		title: "Configuration could not be loaded",
		mdMsg: `
# Failed to load configuration

The configuration file exists but is not valid CUE or does not match the
configuration schema.

## Things you can try
- Print the effective configuration with defaults:
~~~
$ grouprun config show
~~~
- Check field names: ` + "`root`, `marker`, `extension`, `manifest`, `ignore_groups`, `ignore_subpaths`, `command_timeout`, `log_level`, `log_file`, `watch`, `ui`" + `
- ` + "`command_timeout`" + ` is a duration string such as ` + "`\"30s\"`",
	}

	manifestInvalidIssue = &Issue{
		id:    ManifestInvalidId,
		slug:  "manifest-invalid",
		title: "Command manifest unreadable",
		mdMsg: `
# The command manifest could not be read

Descriptions come from a manifest next to the groups. When it is missing or
malformed every command is shown with the description ` + "`description not found`" + `.
Commands still run.

## Expected shape
~~~cue
groups: [{
	name: "infra"
	commands: [
		{name: "deploy", description: "Deploy the stack"},
	]
}]
~~~

The same structure is accepted as JSON (` + "`commands.json`" + `) or TOML
(` + "`commands.toml`" + ` with ` + "`[[groups]]`" + ` tables).`,
	}

	commandNameTooLongIssue = &Issue{
		id:    CommandNameTooLongId,
		slug:  "name-too-long",
		title: "Command name too long",
		mdMsg: `
# A command name is longer than 20 characters

Command names come from file names and are laid out in a 20 character column.
A longer name stops the whole catalog from loading; the previous catalog stays
in effect.

## Things you can try
- Rename the file so its name without extension has at most 20 characters
- Move helper files into a ` + "`lib`" + ` or ` + "`tests`" + ` directory, which are never scanned`,
	}

	unknownCommandIssue = &Issue{
		id:    UnknownCommandId,
		slug:  "unknown-command",
		title: "Unknown command",
		mdMsg: `
# Unknown command

No group contains a command with that name.

## Things you can try
- List what is available:
~~~
$ grouprun list
~~~
- Check that the group directory contains the marker file ` + "`.cmdgroup`" + `
- Rescan after adding files: type ` + "`rescan`" + ` in the shell`,
	}

	noEntryPointIssue = &Issue{
		id:    NoEntryPointId,
		slug:  "no-entry-point",
		title: "Command has no entry point",
		mdMsg: `
# The command has no entry point

A script command must define a top-level function named ` + "`run`" + `.
It is called with the command's arguments.

~~~sh
run() {
	echo "deploying to $1"
}
~~~`,
	}

	ambiguousCommandIssue = &Issue{
		id:    AmbiguousCommandId,
		slug:  "ambiguous-command",
		title: "Command exists in several groups",
		mdMsg: `
# The command exists in several groups

In the shell you are asked to pick a group from a numbered list. Outside the
shell, pass the group explicitly:

~~~
$ grouprun run deploy --group infra
~~~

Inside the shell, ` + "`use infra`" + ` makes a group preferred for later commands.`,
	}

	commandFailedIssue = &Issue{
		id:    CommandFailedId,
		slug:  "command-failed",
		title: "Command failed",
		mdMsg: `
# The command failed

The command returned an error, exited with a non-zero status, panicked or
exceeded ` + "`command_timeout`" + `. The failure is logged with the group, the
command, the arguments and the invocation id.

## Things you can try
- Re-run with ` + "`--verbose`" + ` to see debug logs
- Set ` + "`log_file`" + ` to keep a record of failures`,
	}

	scriptSyntaxErrorIssue = &Issue{
		id:    ScriptSyntaxErrorId,
		slug:  "script-syntax",
		title: "Script syntax error",
		mdMsg: `
# The script could not be parsed

Command scripts are parsed as POSIX shell with bash extensions before they run.

## Things you can try
- Check the reported line and column
- Run ` + "`bash -n script.sh`" + ` to validate the file`,
	}

	issues = map[Id]*Issue{
		rootNotFoundIssue.Id():       rootNotFoundIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		manifestInvalidIssue.Id():    manifestInvalidIssue,
		commandNameTooLongIssue.Id(): commandNameTooLongIssue,
		unknownCommandIssue.Id():     unknownCommandIssue,
		noEntryPointIssue.Id():       noEntryPointIssue,
		ambiguousCommandIssue.Id():   ambiguousCommandIssue,
		commandFailedIssue.Id():      commandFailedIssue,
		scriptSyntaxErrorIssue.Id():  scriptSyntaxErrorIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Lookup finds an issue by slug, case-insensitively.
func Lookup(slug string) (*Issue, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, i := range issues {
		if i.slug == slug {
			return i, true
		}
	}
	return nil, false
}
