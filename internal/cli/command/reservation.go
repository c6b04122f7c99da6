package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/output"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// ReserveCommand returns the guest booking command.
func ReserveCommand() *cli.Command {
	return &cli.Command{
		Name:  "reserve",
		Usage: "Book a table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Guest name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Contact email"},
			&cli.StringFlag{Name: "phone", Usage: "Contact phone"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD"},
			&cli.StringFlag{Name: "time", Aliases: []string{"t"}, Usage: "Seating time, one of " + strings.Join(domain.TimeSlots, ", ")},
			&cli.IntFlag{Name: "guests", Aliases: []string{"g"}, Usage: "Party size (1-12)", Value: domain.DefaultGuests},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Special requests"},
			&cli.BoolFlag{Name: "slots", Usage: "List the seating times and exit"},
		},
		Action: reserve,
	}
}

func reserve(c *cli.Context) error {
	if c.Bool("slots") {
		for _, slot := range domain.TimeSlots {
			fmt.Fprintln(c.App.Writer, slot)
		}
		return nil
	}

	env, err := getEnv(c)
	if err != nil {
		return err
	}

	in := domain.ReservationInput{
		Name:    strings.TrimSpace(c.String("name")),
		Email:   strings.TrimSpace(c.String("email")),
		Phone:   strings.TrimSpace(c.String("phone")),
		Date:    c.String("date"),
		Time:    normalizeSlot(c.String("time")),
		Guests:  c.Int("guests"),
		Message: c.String("message"),
	}
	if err := domain.Validate(in); err != nil {
		return err
	}

	spinner := env.spin(c, "Sending reservation")
	res, err := env.Services.Reservations.Create(env.ctx(c), in)
	spinner.Stop()
	if err != nil {
		return failed(err, "We could not complete your reservation right now.")
	}

	if env.format(c) != output.FormatTable {
		return env.Render(c, res)
	}
	env.Printf("Thank you! Our team will contact you to confirm the booking.\n")
	env.Printf("Reservation %s for %d on %s at %s is %s\n", res.ID, res.Guests, res.Date, res.Time, res.Status)
	return nil
}

// normalizeSlot accepts "7:00 PM" or "7:00pm" for the "07:00 PM" slot.
// Unparsable input is returned unchanged for validation to reject.
func normalizeSlot(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{"03:04 PM", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("03:04 PM")
		}
	}
	return s
}

// ReservationsCommand returns the staff reservation subcommand group.
func ReservationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "reservations",
		Aliases: []string{"res"},
		Usage:   "Review and update bookings (staff)",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List reservations",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Only show pending, confirmed or cancelled"},
				},
				Action: reservationsList,
			},
			{
				Name:      "status",
				Usage:     "Set the status of a reservation",
				ArgsUsage: "RESERVATION_ID pending|confirmed|cancelled",
				Action:    reservationsStatus,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a reservation",
				ArgsUsage: "RESERVATION_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip confirmation"},
				},
				Action: reservationsDelete,
			},
		},
	}
}

func reservationsList(c *cli.Context) error {
	var filter domain.ReservationStatus
	if v := c.String("status"); v != "" {
		st, err := domain.ParseReservationStatus(strings.ToLower(v))
		if err != nil {
			return err
		}
		filter = st
	}

	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}

	list, err := env.Services.Reservations.List(ctx)
	if err != nil {
		return failed(err, "Unable to load dashboard")
	}
	if filter != "" {
		kept := list[:0]
		for _, r := range list {
			if r.Status == filter {
				kept = append(kept, r)
			}
		}
		list = kept
	}
	return env.Render(c, list)
}

func reservationsStatus(c *cli.Context) error {
	id, err := requireArg(c, "RESERVATION_ID")
	if err != nil {
		return err
	}
	if c.NArg() < 2 {
		return domain.ErrMissingArgument.WithDetails("status (pending, confirmed or cancelled)")
	}
	st, err := domain.ParseReservationStatus(strings.ToLower(c.Args().Get(1)))
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

	updated, err := env.Services.Reservations.UpdateStatus(ctx, id, st)
	if err != nil {
		return failed(err, "Unable to update reservation")
	}
	return env.Render(c, updated)
}

func reservationsDelete(c *cli.Context) error {
	id, err := requireArg(c, "RESERVATION_ID")
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
	if ok, err := confirmDelete(c, env, "reservation "+id); !ok || err != nil {
		return err
	}

	if err := env.Services.Reservations.Delete(ctx, id); err != nil {
		return failed(err, "Unable to delete reservation")
	}
	env.Printf("Deleted reservation %s\n", id)
	return nil
}
