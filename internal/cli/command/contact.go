package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/output"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// ContactCommand returns the guest contact form command.
func ContactCommand() *cli.Command {
	return &cli.Command{
		Name:  "contact",
		Usage: "Send a message to the restaurant",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Your name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Reply-to email"},
			&cli.StringFlag{Name: "phone", Usage: "Phone (optional)"},
			&cli.StringFlag{Name: "subject", Aliases: []string{"s"}, Usage: "Subject"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Message body"},
		},
		Action: contactSend,
	}
}

func contactSend(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	p := domain.ContactPayload{
		Name:    strings.TrimSpace(c.String("name")),
		Email:   strings.TrimSpace(c.String("email")),
		Phone:   strings.TrimSpace(c.String("phone")),
		Subject: strings.TrimSpace(c.String("subject")),
		Message: c.String("message"),
	}
	if err := domain.Validate(p); err != nil {
		return err
	}

	spinner := env.spin(c, "Sending message")
	msg, err := env.Services.Contact.Submit(env.ctx(c), p)
	spinner.Stop()
	if err != nil {
		return failed(err, "Unable to send message")
	}

	if env.format(c) != output.FormatTable {
		return env.Render(c, msg)
	}
	env.Printf("Message received. Our concierge will respond shortly.\n")
	return nil
}

// MessagesCommand returns the staff inbox subcommand group.
func MessagesCommand() *cli.Command {
	return &cli.Command{
		Name:    "messages",
		Aliases: []string{"msg"},
		Usage:   "Read contact form messages (staff)",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List messages",
				Action:  messagesList,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Remove a message",
				ArgsUsage: "MESSAGE_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip confirmation"},
				},
				Action: messagesDelete,
			},
		},
	}
}

func messagesList(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}

	list, err := env.Services.Contact.List(ctx)
	if err != nil {
		return failed(err, "Unable to load dashboard")
	}
	return env.Render(c, list)
}

func messagesDelete(c *cli.Context) error {
	id, err := requireArg(c, "MESSAGE_ID")
	if err != nil {
		return err
	}
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}
	if ok, err := confirmDelete(c, env, "message "+id); !ok || err != nil {
		return err
	}

	if err := env.Services.Contact.Delete(ctx, id); err != nil {
		return failed(err, "Unable to remove message")
	}
	env.Printf("Removed message %s\n", id)
	return nil
}
