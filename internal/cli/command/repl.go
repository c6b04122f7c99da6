package command

import (
	"bufio"
	"context"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/credential"
	"github.com/yndnr/spot-go/internal/cli/repl"
)

const replKey = "spot.repl"

// REPLCommand returns the interactive mode command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive session",
		Action:  runREPL,
	}
}

func runREPL(c *cli.Context) error {
	if _, nested := c.App.Metadata[replKey]; nested {
		return &userError{msg: "already in interactive mode"}
	}

	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)

	// Every line shares one buffered reader so prompts inside commands
	// read the next line of the same input.
	env.Streams.In = bufio.NewReader(env.Streams.In)
	streams := env.Streams

	if err := env.Restore(ctx); err != nil {
		PrintError(streams.Err, failed(err, "Unable to restore session"))
	}

	stopWatch, err := credential.Watch(env.Store, env.Log, func() {
		if err := env.Session.Sync(ctx); err != nil {
			env.Log.Warn("session sync failed", "error", err)
		}
	})
	if err != nil {
		env.Log.Warn("credential watch unavailable", "error", err)
	} else {
		defer stopWatch()
	}

	history := repl.NewHistory(env.Config.HistoryPath())
	if err := history.Load(); err != nil {
		env.Log.Warn("load history failed", "error", err)
	}

	r := repl.New(repl.Options{
		In:  streams.In,
		Out: streams.Out,
		Err: streams.Err,
		Prompt: func() string {
			if u, err := env.Session.User(); err == nil {
				return "spot(" + u.Email + ")> "
			}
			return "spot> "
		},
		Exec: func(ctx context.Context, args []string) error {
			app := newApp(streams, env)
			app.Metadata[replKey] = true
			return app.RunContext(ctx, append([]string{app.Name}, args...))
		},
		OnError:   func(w io.Writer, err error) { PrintError(w, err) },
		Completer: repl.NewCompleter(append(commandPaths(newApp(streams, env).Commands, ""), "help")),
		History:   history,
	})

	env.Printf("spot-cli interactive mode. Type 'help' for commands, '<prefix>?' to complete, 'exit' to leave.\n")
	runErr := r.Run(ctx)
	if err := history.Save(); err != nil {
		env.Log.Warn("save history failed", "error", err)
	}
	return runErr
}

// commandPaths lists every command as typed, subcommands included.
func commandPaths(cmds []*cli.Command, parent string) []string {
	var out []string
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		path := cmd.Name
		if parent != "" {
			path = parent + " " + cmd.Name
		}
		out = append(out, path)
		out = append(out, commandPaths(cmd.Subcommands, path)...)
	}
	return out
}
