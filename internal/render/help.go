// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/invowk/grouprun/internal/catalog"
)

// Title heads the help output.
const Title = "grouprun"

// NoCommands stands in for the rows of a group without commands.
const NoCommands = "(no commands)"

// Row is one line of the help table.
type Row struct {
	Name        string
	Description string
}

// Builtins are the rows every interactive help listing ends with.
var Builtins = []Row{
	{Name: "help", Description: "Show this help message"},
	{Name: "exit", Description: "Exit the program"},
}

// Pad right-pads name with spaces to the command-name width. Longer names
// are returned unchanged.
func Pad(name string) string {
	n := utf8.RuneCountInString(name)
	if n >= catalog.MaxCommandNameLength {
		return name
	}
	return name + strings.Repeat(" ", catalog.MaxCommandNameLength-n)
}

// Help writes the catalog grouped by group name, then the extra rows.
// Names are padded to the maximum command-name width so descriptions line up.
func Help(w io.Writer, cat *catalog.Catalog, theme Theme, extra ...Row) error {
	var b strings.Builder
	b.WriteString(theme.Title.Render(Title))
	b.WriteString("\nCommands:\n")

	for _, g := range cat.GroupNames() {
		cmds := cat.Commands(g)
		fmt.Fprintf(&b, "%s\n", theme.Group.Render("["+g.String()+"]"))
		if len(cmds) == 0 {
			fmt.Fprintf(&b, "  %s\n", theme.Muted.Render(NoCommands))
			continue
		}
		for _, cmd := range cmds {
			writeRow(&b, theme, Row{Name: cmd.Name.String(), Description: cmd.Description.String()})
		}
	}
	for _, r := range extra {
		writeRow(&b, theme, r)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, theme Theme, r Row) {
	fmt.Fprintf(b, "  %s- %s\n", theme.Command.Render(Pad(r.Name)), theme.Description.Render(r.Description))
}

// Groups writes one line per group with its command count. The preferred
// group, if any, is marked with an asterisk.
func Groups(w io.Writer, cat *catalog.Catalog, theme Theme, preferred catalog.GroupName) error {
	var b strings.Builder
	for _, g := range cat.Groups() {
		mark := " "
		if g.Name == preferred {
			mark = "*"
		}
		count := len(cat.Commands(g.Name))
		noun := "commands"
		if count == 1 {
			noun = "command"
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			mark,
			theme.Command.Render(Pad(g.Name.String())),
			theme.Description.Render(fmt.Sprintf("%d %s", count, noun)),
			theme.Muted.Render(g.Dir))
	}
	if b.Len() == 0 {
		b.WriteString(theme.Muted.Render("no groups found") + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
