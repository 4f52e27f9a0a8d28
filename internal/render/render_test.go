// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/pkg/types"
)

func sampleCatalog() *catalog.Catalog {
	groups := catalog.GroupSet{
		"infra": {Name: "infra", Dir: "/srv/infra"},
		"net":   {Name: "net", Dir: "/srv/net"},
		"empty": {Name: "empty", Dir: "/srv/empty"},
	}
	return catalog.New(groups,
		catalog.Command{Group: "infra", Name: "deploy", Description: "Deploy the stack"},
		catalog.Command{Group: "infra", Name: "status", Description: types.NoDescription},
		catalog.Command{Group: "net", Name: "deploy", Description: "Push | routes"},
	)
}

func TestPad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{in: "help", want: 20},
		{in: "", want: 20},
		{in: "déploy", want: 21}, // é is two bytes, one rune
		{in: strings.Repeat("x", 20), want: 20},
		{in: strings.Repeat("x", 25), want: 25},
	}
	for _, tt := range tests {
		if got := len(Pad(tt.in)); got != tt.want {
			t.Errorf("len(Pad(%q)) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Help(&buf, sampleCatalog(), PlainTheme(), Builtins...); err != nil {
		t.Fatalf("Help() error = %v", err)
	}

	want := strings.Join([]string{
		"grouprun",
		"Commands:",
		"[empty]",
		"  (no commands)",
		"[infra]",
		"  deploy              - Deploy the stack",
		"  status              - description not found",
		"[net]",
		"  deploy              - Push | routes",
		"  help                - Show this help message",
		"  exit                - Exit the program",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Help() =\n%s\nwant\n%s", got, want)
	}
}

func TestGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Groups(&buf, sampleCatalog(), PlainTheme(), "net"); err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Groups() wrote %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  empty") || !strings.Contains(lines[0], "0 commands") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2 commands") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "* net") || !strings.Contains(lines[2], "1 command ") {
		t.Errorf("line 2 = %q", lines[2])
	}

	buf.Reset()
	_ = Groups(&buf, catalog.Empty(), PlainTheme(), "")
	if buf.String() != "no groups found\n" {
		t.Errorf("Groups(empty) = %q", buf.String())
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Markdown(sampleCatalog())
	for _, want := range []string{
		"| Group | Command | Description |",
		"| infra | `deploy` | Deploy the stack |",
		"| net | `deploy` | Push \\| routes |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q in\n%s", want, md)
		}
	}
	if !strings.Contains(Markdown(catalog.Empty()), "No commands found") {
		t.Error("Markdown(empty) should say no commands were found")
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown(Markdown(sampleCatalog()), MarkdownOptions{Style: "notty", Width: 100})
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	for _, want := range []string{"infra", "deploy", "Deploy the stack"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	diags := []types.Diagnostic{
		{Severity: types.SeverityError, Message: "root missing", Path: "/nope"},
		{Severity: types.SeverityWarning, Message: "duplicate group"},
		{Severity: types.SeverityInfo, Message: "no manifest"},
	}

	var quiet bytes.Buffer
	Diagnostics(&quiet, diags, PlainTheme(), false)
	if want := "error: root missing\nwarning: duplicate group\n"; quiet.String() != want {
		t.Errorf("quiet = %q, want %q", quiet.String(), want)
	}

	var loud bytes.Buffer
	Diagnostics(&loud, diags, PlainTheme(), true)
	if !strings.Contains(loud.String(), "error: root missing (/nope)") || !strings.Contains(loud.String(), "info: no manifest") {
		t.Errorf("verbose = %q", loud.String())
	}
}
