// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"io"

	"github.com/invowk/grouprun/pkg/types"
)

// Diagnostics writes one line per diagnostic. Info diagnostics are only
// shown when verbose is set.
func Diagnostics(w io.Writer, diags []types.Diagnostic, theme Theme, verbose bool) {
	for _, d := range diags {
		var prefix string
		switch d.Severity {
		case types.SeverityError:
			prefix = theme.Error.Render("error")
		case types.SeverityWarning:
			prefix = theme.Warning.Render("warning")
		default:
			if !verbose {
				continue
			}
			prefix = theme.Muted.Render("info")
		}
		if verbose && d.Path != "" {
			_, _ = fmt.Fprintf(w, "%s: %s (%s)\n", prefix, d.Message, d.Path)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, d.Message)
	}
}
