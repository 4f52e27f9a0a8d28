// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/invowk/grouprun/internal/catalog"
)

// SelectPrompt is shown when asking for a group number.
const SelectPrompt = "Select a group by number: "

type (
	// Chooser picks one group among the candidates that define command.
	// Returning an error wrapping ErrSelectionCancelled aborts the dispatch
	// without running anything.
	Chooser interface {
		Choose(ctx context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error)
	}

	// ChooserFunc adapts a function to Chooser.
	ChooserFunc func(ctx context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error)

	// LineReader reads one line of input after showing prompt.
	LineReader interface {
		ReadLine(prompt string) (string, error)
	}

	// PromptChooser prints a numbered menu and reads the answer from In,
	// asking again until it gets a valid number.
	PromptChooser struct {
		In  LineReader
		Out io.Writer
	}

	// StaticChooser always answers Group.
	StaticChooser struct {
		Group catalog.GroupName
	}

	// NoChooser cancels every selection. It is used when nobody can answer.
	NoChooser struct{}

	scannerReader struct {
		scanner *bufio.Scanner
		out     io.Writer
	}
)

// Choose implements Chooser.
func (f ChooserFunc) Choose(ctx context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error) {
	return f(ctx, command, candidates)
}

// NewScannerReader returns a LineReader over r that writes prompts to w.
func NewScannerReader(r io.Reader, w io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r), out: w}
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Choose implements Chooser. End of input or any read error cancels.
func (c *PromptChooser) Choose(ctx context.Context, _ catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error) {
	fmt.Fprintln(c.Out, "Multiple groups contain this command:")
	for i, g := range candidates {
		fmt.Fprintf(c.Out, "%d. %s\n", i+1, g)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrSelectionCancelled, err)
		}
		line, err := c.In.ReadLine(SelectPrompt)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSelectionCancelled, err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil:
			fmt.Fprintln(c.Out, "Invalid input. Please enter a number.")
		case n < 1 || n > len(candidates):
			fmt.Fprintln(c.Out, "Invalid choice. Try again.")
		default:
			return candidates[n-1], nil
		}
	}
}

// Choose implements Chooser.
func (c StaticChooser) Choose(_ context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error) {
	if slices.Contains(candidates, c.Group) {
		return c.Group, nil
	}
	return "", fmt.Errorf("%w: group %q does not define %q", ErrSelectionCancelled, c.Group, command)
}

// Choose implements Chooser.
func (NoChooser) Choose(_ context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error) {
	return "", fmt.Errorf("%w: %q is defined in %d groups and no group was chosen", ErrSelectionCancelled, command, len(candidates))
}

// Prefer answers with the group returned by preferred when it is a
// candidate and defers to fallback otherwise.
func Prefer(preferred func() catalog.GroupName, fallback Chooser) Chooser {
	return ChooserFunc(func(ctx context.Context, command catalog.CommandName, candidates []catalog.GroupName) (catalog.GroupName, error) {
		if g := preferred(); g != "" && slices.Contains(candidates, g) {
			return g, nil
		}
		return fallback.Choose(ctx, command, candidates)
	})
}
