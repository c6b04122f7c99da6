package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/output"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// DashboardCommand returns the staff overview command.
func DashboardCommand() *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  "Show the managed menu, reservations and messages (staff)",
		Action: dashboard,
	}
}

// dashboardView is the JSON and YAML form of the dashboard.
type dashboardView struct {
	Menu         []domain.MenuItem       `json:"menu"`
	Reservations []domain.Reservation    `json:"reservations"`
	Messages     []domain.ContactMessage `json:"messages"`
}

func dashboard(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}

	spinner := env.spin(c, "Loading dashboard")
	d, err := env.Services.LoadDashboard(ctx, env.Session)
	spinner.Stop()
	if err != nil {
		return failed(err, "Unable to load dashboard")
	}

	if env.format(c) != output.FormatTable {
		return env.Render(c, dashboardView{Menu: d.Menu, Reservations: d.Reservations, Messages: d.Messages})
	}

	pending := 0
	for _, r := range d.Reservations {
		if r.Status == domain.StatusPending {
			pending++
		}
	}
	env.Printf("Menu (%d items)\n", len(d.Menu))
	if err := env.Render(c, d.Menu); err != nil {
		return err
	}
	env.Printf("\nReservations (%d, %d pending)\n", len(d.Reservations), pending)
	if err := env.Render(c, d.Reservations); err != nil {
		return err
	}
	env.Printf("\nMessages (%d)\n", len(d.Messages))
	return env.Render(c, d.Messages)
}
