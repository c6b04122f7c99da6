package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnterminatedQuote is returned by Split for a line with an open quote.
var ErrUnterminatedQuote = errors.New("repl: unterminated quote")

// ExecFunc runs one parsed line.
type ExecFunc func(ctx context.Context, args []string) error

// Options configures a REPL. Nil fields get defaults.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Prompt is called before every line.
	Prompt func() string
	Exec   ExecFunc
	// OnError prints a failed line. Defaults to "Error: <err>" on Err.
	OnError func(w io.Writer, err error)

	Completer *Completer
	History   *History
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     *bufio.Reader
	output    io.Writer
	errOutput io.Writer
	prompt    func() string
	exec      ExecFunc
	onError   func(io.Writer, error)
	completer *Completer
	history   *History
}

// New creates a REPL. When opts.In is already a *bufio.Reader it is used
// as is, so commands sharing it read the same buffered input.
func New(opts Options) *REPL {
	r := &REPL{
		output:    opts.Out,
		errOutput: opts.Err,
		prompt:    opts.Prompt,
		exec:      opts.Exec,
		onError:   opts.OnError,
		completer: opts.Completer,
		history:   opts.History,
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	if br, ok := in.(*bufio.Reader); ok {
		r.input = br
	} else {
		r.input = bufio.NewReader(in)
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.errOutput == nil {
		r.errOutput = r.output
	}
	if r.prompt == nil {
		r.prompt = func() string { return "spot> " }
	}
	if r.exec == nil {
		r.exec = func(context.Context, []string) error { return nil }
	}
	if r.onError == nil {
		r.onError = func(w io.Writer, err error) { fmt.Fprintf(w, "Error: %v\n", err) }
	}
	if r.completer == nil {
		r.completer = NewCompleter(nil)
	}
	if r.history == nil {
		r.history = NewHistory("")
	}
	return r
}

// History returns the REPL history.
func (r *REPL) History() *History {
	return r.history
}

// Run reads and executes lines until exit, quit, end of input or ctx is
// cancelled. A failing line is reported and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt())

		line, err := r.input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)
		if done := r.handle(ctx, line); done {
			return nil
		}
		if eof {
			return nil
		}
	}
}

// handle runs one non-empty line and reports whether the loop should stop.
func (r *REPL) handle(ctx context.Context, line string) bool {
	switch line {
	case "exit", "quit":
		return true
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, entry)
		}
		return false
	}

	if prefix, ok := strings.CutSuffix(line, "?"); ok {
		for _, s := range r.completer.Complete(strings.TrimLeft(prefix, " ")) {
			fmt.Fprintln(r.output, s)
		}
		return false
	}

	args, err := Split(line)
	if err != nil {
		r.onError(r.errOutput, err)
		return false
	}
	if err := r.exec(ctx, args); err != nil {
		r.onError(r.errOutput, err)
	}
	return false
}

// Split breaks line into arguments. Whitespace separates arguments;
// single quotes keep text literally; double quotes keep whitespace and
// allow \" and \; a backslash outside quotes escapes the next rune.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)
	for _, ch := range line {
		switch {
		case escaped:
			cur.WriteRune(ch)
			escaped = false
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
		case quote == '"':
			switch ch {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				cur.WriteRune(ch)
			}
		case ch == '\\':
			escaped = true
			inArg = true
		case ch == '\'' || ch == '"':
			quote = ch
			inArg = true
		case ch == ' ' || ch == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(ch)
			inArg = true
		}
	}
	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
