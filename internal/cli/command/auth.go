package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/core/domain"
	"github.com/yndnr/spot-go/pkg/token"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in as staff and save the session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Staff email",
				EnvVars: []string{"SPOT_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "password",
				Usage:   "Password (prompted when omitted)",
				EnvVars: []string{"SPOT_PASSWORD"},
			},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	creds := domain.Credentials{
		Email:    strings.TrimSpace(c.String("email")),
		Password: c.String("password"),
	}
	if creds.Email == "" && c.Args().Present() {
		creds.Email = c.Args().First()
	}
	if creds.Password == "" && creds.Email != "" {
		creds.Password, err = promptPassword(env.Streams, "Password: ")
		if err != nil {
			return err
		}
	}
	if err := domain.Validate(creds); err != nil {
		return err
	}

	spinner := env.spin(c, "Signing in")
	err = env.Session.Login(env.ctx(c), creds.Email, creds.Password)
	spinner.Stop()
	if err != nil {
		return failed(err, "Unable to sign in")
	}

	user, err := env.Session.User()
	if err != nil {
		return err
	}
	env.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and forget the saved session",
		Action: logout,
	}
}

func logout(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	if err := env.Session.Logout(env.ctx(c)); err != nil {
		return &userError{
			msg: fmt.Sprintf("signed out, but the saved session could not be removed: %v", err),
			err: err,
		}
	}
	env.Printf("Signed out\n")
	return nil
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the signed-in staff user",
		Action: whoami,
	}
}

func whoami(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	if err := env.RequireSession(env.ctx(c)); err != nil {
		return err
	}

	user, err := env.Session.User()
	if err != nil {
		return err
	}
	return env.Render(c, user)
}

// sessionStatus is the view printed by the status command.
type sessionStatus struct {
	State             string     `json:"state"`
	API               string     `json:"api"`
	Profile           string     `json:"profile,omitempty"`
	User              string     `json:"user,omitempty"`
	TokenFingerprint  string     `json:"tokenFingerprint,omitempty"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	CredentialBackend string     `json:"credentialBackend"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the session state and API endpoint",
		Action: status,
	}
}

func status(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	if err := env.Restore(env.ctx(c)); err != nil {
		return failed(err, "Unable to restore session")
	}

	snap := env.Session.Snapshot()
	st := sessionStatus{
		State:             snap.State.String(),
		API:               env.Client.BaseURL(),
		Profile:           env.Config.CurrentProfile,
		TokenFingerprint:  token.Fingerprint(snap.Token),
		CredentialBackend: env.Config.Credential.Backend,
	}
	if snap.User != nil {
		st.User = fmt.Sprintf("%s <%s>", snap.User.Name, snap.User.Email)
	}
	if claims, err := token.Inspect(snap.Token); err == nil && !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		st.ExpiresAt = &exp
	}
	return env.Render(c, st)
}
