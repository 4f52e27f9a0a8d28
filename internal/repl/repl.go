// SPDX-License-Identifier: MPL-2.0

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/invowk/grouprun/internal/app"
	"github.com/invowk/grouprun/internal/catalog"
	"github.com/invowk/grouprun/internal/dispatch"
	"github.com/invowk/grouprun/internal/issue"
	"github.com/invowk/grouprun/internal/render"
	"github.com/invowk/grouprun/internal/watch"
)

// Prompt is the main input prompt.
const Prompt = "> "

// builtinRows describe the builtins in help output, after the commands.
var builtinRows = []render.Row{
	{Name: "groups", Description: "List discovered groups"},
	{Name: "use <group>", Description: "Prefer a group when a command is ambiguous"},
	{Name: "rescan", Description: "Rediscover groups and commands"},
	render.Builtins[0],
	render.Builtins[1],
}

type (
	// LineSource supplies input lines. *readline.Instance satisfies it.
	LineSource interface {
		Readline() (string, error)
		SetPrompt(prompt string)
		Close() error
	}

	// Options configures a REPL.
	Options struct {
		Session *app.Session
		// Lines overrides the line editor; nil creates a readline instance on
		// the process terminal.
		Lines LineSource
		// In feeds the readline instance; os.Stdin when nil.
		In    io.Reader
		Out   io.Writer
		Err   io.Writer
		Theme render.Theme
		// Verbose announces automatic group selection.
		Verbose bool
		NoColor bool
		// Watcher, when set, is run for the lifetime of the loop and a stale
		// catalog is rebuilt before the next input is read.
		Watcher     *watch.Watcher
		HistoryFile string
	}

	// REPL is the interactive loop. It is not safe for concurrent use.
	REPL struct {
		session   *app.Session
		lines     LineSource
		in        io.Reader
		out       io.Writer
		errOut    io.Writer
		theme     render.Theme
		verbose   bool
		watcher   *watch.Watcher
		history   string
		logger    *slog.Logger
		preferred catalog.GroupName

		prompt string
		red    *color.Color
		yellow *color.Color
		green  *color.Color
		cyan   *color.Color
	}
)

// New validates opts and creates a REPL.
func New(opts Options) (*REPL, error) {
	if opts.Session == nil {
		return nil, errors.New("repl: session is required")
	}
	r := &REPL{
		session: opts.Session,
		lines:   opts.Lines,
		in:      opts.In,
		out:     opts.Out,
		errOut:  opts.Err,
		theme:   opts.Theme,
		verbose: opts.Verbose,
		watcher: opts.Watcher,
		history: opts.HistoryFile,
		logger:  opts.Session.Logger(),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		green:   color.New(color.FgGreen),
		cyan:    color.New(color.FgCyan, color.Bold),
	}
	if r.in == nil {
		r.in = os.Stdin
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	if opts.NoColor {
		for _, c := range []*color.Color{r.red, r.yellow, r.green, r.cyan} {
			c.DisableColor()
		}
	}
	r.prompt = r.cyan.Sprint(Prompt)
	return r, nil
}

// Preferred returns the group chosen with "use", or "".
func (r *REPL) Preferred() catalog.GroupName { return r.preferred }

// Run reads and handles lines until exit, end of input, or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	if r.lines == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:            r.prompt,
			HistoryFile:       r.history,
			AutoComplete:      &completer{r: r},
			InterruptPrompt:   "^C",
			EOFPrompt:         "exit",
			HistorySearchFold: true,
			Stdin:             asReadCloser(r.in),
			Stdout:            r.out,
			Stderr:            r.errOut,
		})
		if err != nil {
			return fmt.Errorf("create line editor: %w", err)
		}
		r.lines = rl
	}
	defer r.lines.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if r.watcher != nil {
		go func() {
			if err := r.watcher.Run(ctx); err != nil {
				r.logger.Warn("file watcher stopped; use 'rescan' to pick up changes", "error", err)
			}
		}()
	}

	chooser := &dispatch.PromptChooser{In: &menuReader{lines: r.lines, restore: r.prompt}, Out: r.out}
	d := r.session.Dispatcher(dispatch.Prefer(r.Preferred, chooser))

	fmt.Fprintln(r.out, r.cyan.Sprint("Welcome to grouprun! Type 'help' for commands."))
	fmt.Fprintf(r.out, "Commands root: %s\n", r.session.Root())

	for {
		if ctx.Err() != nil {
			return nil
		}
		r.refreshIfStale(ctx)

		r.lines.SetPrompt(r.prompt)
		line, err := r.lines.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out, "Exiting the application.")
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		if r.handle(ctx, d, line) {
			return nil
		}
	}
}

// handle runs one input line and reports whether the loop should stop.
func (r *REPL) handle(ctx context.Context, d *dispatch.Dispatcher, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	keyword := strings.ToLower(fields[0])
	if len(fields) == 1 {
		switch keyword {
		case "exit", "quit":
			fmt.Fprintln(r.out, "Exiting the application.")
			return true
		case "help":
			if err := render.Help(r.out, r.session.Catalog(), r.theme, builtinRows...); err != nil {
				r.logger.Warn("write help", "error", err)
			}
			return false
		case "groups":
			if err := render.Groups(r.out, r.session.Catalog(), r.theme, r.preferred); err != nil {
				r.logger.Warn("write groups", "error", err)
			}
			return false
		case "rescan":
			r.rescan(ctx, true)
			return false
		}
	}
	if keyword == "use" {
		req, err := dispatch.Parse(line)
		if err != nil {
			r.report(dispatch.Result{Kind: dispatch.KindParseError, Err: err})
			return false
		}
		r.use(req.Args)
		return false
	}

	r.report(d.Dispatch(ctx, line))
	return false
}

func (r *REPL) use(args []string) {
	if len(args) == 0 {
		r.preferred = ""
		fmt.Fprintln(r.out, "Group context cleared.")
		return
	}
	if len(args) > 1 {
		fmt.Fprintln(r.out, r.yellow.Sprint("Usage: use <group>. Quote a group name that contains spaces."))
		return
	}
	name := catalog.GroupName(args[0])
	cat := r.session.Catalog()
	if !cat.HasGroup(name) {
		names := make([]string, 0, len(cat.GroupNames()))
		for _, g := range cat.GroupNames() {
			names = append(names, g.String())
		}
		fmt.Fprintln(r.out, r.yellow.Sprintf("Group '%s' not found. Available: %s", name, strings.Join(names, ", ")))
		return
	}
	r.preferred = name
	fmt.Fprintf(r.out, "Group context set to: %s\n", name)
}

func (r *REPL) report(res dispatch.Result) {
	if res.Kind == dispatch.KindInvoked && res.AutoSelected && r.verbose {
		fmt.Fprintf(r.out, "Automatically selected group: %s\n", res.Group)
	}
	msg := res.Message()
	if msg == "" {
		return
	}
	switch res.Kind {
	case dispatch.KindFailed, dispatch.KindParseError:
		fmt.Fprintln(r.out, r.red.Sprint(msg))
	default:
		fmt.Fprintln(r.out, r.yellow.Sprint(msg))
	}
}

// rescan rebuilds the catalog. Automatic rescans stay quiet unless the
// catalog changed or the rebuild failed.
func (r *REPL) rescan(ctx context.Context, explicit bool) {
	report, err := r.session.Rescan(ctx)
	render.Diagnostics(r.errOut, report.Diagnostics, r.theme, r.verbose)
	if err != nil {
		msg := err.Error()
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			msg = ae.Format(r.verbose)
		}
		fmt.Fprintln(r.out, r.red.Sprint(msg))
		fmt.Fprintln(r.out, "Keeping the previous command list.")
		return
	}
	if explicit || report.Changed {
		fmt.Fprintln(r.out, r.green.Sprintf("Found %d commands in %d groups.", report.Commands, report.Groups))
	}
	if r.preferred != "" && !r.session.Catalog().HasGroup(r.preferred) {
		fmt.Fprintf(r.out, "Group '%s' is gone; group context cleared.\n", r.preferred)
		r.preferred = ""
	}
}

func (r *REPL) refreshIfStale(ctx context.Context) {
	if r.watcher == nil {
		return
	}
	if changed, ok := r.watcher.Take(); ok {
		r.logger.Debug("files changed; rescanning", "changed", changed)
		r.rescan(ctx, false)
	}
}

func asReadCloser(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

// menuReader lets the disambiguation menu borrow the line editor.
type menuReader struct {
	lines   LineSource
	restore string
}

func (m *menuReader) ReadLine(prompt string) (string, error) {
	m.lines.SetPrompt(prompt)
	defer m.lines.SetPrompt(m.restore)
	return m.lines.Readline()
}
