// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/invowk/grouprun/internal/catalog"
)

// Markdown returns the catalog as a markdown table, one row per command.
func Markdown(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	if cat.Len() == 0 {
		b.WriteString("_No commands found._\n")
		return b.String()
	}
	b.WriteString("| Group | Command | Description |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, g := range cat.GroupNames() {
		for _, cmd := range cat.Commands(g) {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n",
				escapeCell(g.String()), cmd.Name, escapeCell(cmd.Description.String()))
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// MarkdownOptions controls RenderMarkdown.
type MarkdownOptions struct {
	// Style is a glamour standard style ("dark", "light", "notty"). Empty
	// selects one from the terminal background.
	Style string
	// Width wraps output; zero disables wrapping.
	Width int
}

// RenderMarkdown renders md for the terminal.
func RenderMarkdown(md string, opts MarkdownOptions) (string, error) {
	var rendererOpts []glamour.TermRendererOption
	if opts.Style == "" {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	r, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
