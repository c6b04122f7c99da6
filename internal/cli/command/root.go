package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/infra/buildinfo"
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// App creates the CLI application on the process streams.
func App() *cli.App {
	return NewApp(StdStreams())
}

// NewApp creates the CLI application on the given streams.
func NewApp(s Streams) *cli.App {
	return newApp(s, nil)
}

// newApp builds the command tree. A non-nil env is reused instead of
// being built from flags; the REPL runs every line this way.
func newApp(s Streams, env *Env) *cli.App {
	app := &cli.App{
		Name:    "spot-cli",
		Usage:   "Staff and guest client for the Spot restaurant API",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			StatusCommand(),
			MenuCommand(),
			ReserveCommand(),
			ReservationsCommand(),
			ContactCommand(),
			MessagesCommand(),
			DashboardCommand(),
			ConfigCommand(),
			ProfileCommand(),
			REPLCommand(),
		},
		Reader:               s.In,
		Writer:               s.Out,
		ErrWriter:            s.Err,
		Metadata:             map[string]any{},
		EnableBashCompletion: true,
		// Errors are printed once by the caller.
		ExitErrHandler: func(*cli.Context, error) {},
		After: func(c *cli.Context) error {
			if env == nil {
				return closeEnv(c)
			}
			return nil
		},
	}
	if env != nil {
		app.Metadata[envKey] = env
	}
	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.spot/cli.yaml)",
			EnvVars: []string{"SPOT_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "API base URL, e.g. http://localhost:5000/api",
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "Saved connection profile to use",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:  "no-headers",
			Usage: "Omit table headers",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log requests and session changes to stderr",
		},
	}
}

// flagOverrides maps explicitly set global flags to config keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("api-url") {
		overrides["api.url"] = c.String("api-url")
		// An explicit URL wins over any saved profile.
		overrides["current_profile"] = ""
	}
	if c.IsSet("profile") {
		overrides["current_profile"] = c.String("profile")
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}
	return overrides
}

// PrintError writes err to w in the form "error: <message>". Server and
// transport failures print their normalized message only.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", errorMessage(err))
}

func errorMessage(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg
	}
	return connection.Message(err)
}

// userError is an action failure already phrased for display.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// failed phrases err for the user. fallback is shown when the server
// sent an empty message.
func failed(err error, fallback string) error {
	if err == nil {
		return nil
	}
	msg := connection.Message(err)
	if msg == "" {
		msg = fallback
	}
	return &userError{msg: msg, err: err}
}
