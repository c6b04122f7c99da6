package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/config"
	"github.com/yndnr/spot-go/internal/cli/connection"
)

// ProfileCommand returns the saved endpoint subcommand group.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage saved API endpoints",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved profiles",
				Action:  profileList,
			},
			{
				Name:      "add",
				Usage:     "Save a new profile",
				ArgsUsage: "NAME URL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "ca-file", Usage: "PEM bundle trusted for this endpoint"},
					&cli.BoolFlag{Name: "use", Usage: "Switch to the profile after adding it"},
				},
				Action: profileAdd,
			},
			{
				Name:      "use",
				Usage:     "Switch the current profile",
				ArgsUsage: "NAME",
				Action:    profileUse,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Delete a saved profile",
				ArgsUsage: "NAME",
				Action:    profileRemove,
			},
		},
	}
}

// profileRow is one row of profile list.
type profileRow struct {
	Current string `json:"current"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	CAFile  string `json:"caFile,omitempty"`
}

func sortedProfiles(cfg *config.CLIConfig) []connection.Profile {
	return profileManager(cfg).List()
}

func profileManager(cfg *config.CLIConfig) *connection.Manager {
	list := make([]connection.Profile, 0, len(cfg.Profiles))
	for name, p := range cfg.Profiles {
		list = append(list, connection.Profile{Name: name, URL: p.URL, CAFile: p.CAFile})
	}
	return connection.NewManager(list, cfg.CurrentProfile)
}

// saveProfiles writes the manager's state back into cfg and the file.
func saveProfiles(cfg *config.CLIConfig, path string, m *connection.Manager) error {
	cfg.Profiles = make(map[string]config.ProfileConfig)
	for _, p := range m.List() {
		cfg.Profiles[p.Name] = config.ProfileConfig{URL: p.URL, CAFile: p.CAFile}
	}
	cfg.CurrentProfile = m.CurrentName()
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return config.Save(cfg, path)
}

func profileList(c *cli.Context) error {
	cfg, _, err := readConfigFile(c)
	if err != nil {
		return err
	}
	m := profileManager(cfg)
	rows := make([]profileRow, 0, len(cfg.Profiles))
	for _, p := range m.List() {
		row := profileRow{Name: p.Name, URL: p.URL, CAFile: p.CAFile}
		if p.Name == m.CurrentName() {
			row.Current = "*"
		}
		rows = append(rows, row)
	}
	return render(c, cfg, c.App.Writer, rows)
}

func profileAdd(c *cli.Context) error {
	if c.NArg() != 2 {
		return &userError{msg: "usage: profile add NAME URL"}
	}
	cfg, path, err := readConfigFile(c)
	if err != nil {
		return err
	}

	m := profileManager(cfg)
	p := connection.Profile{Name: c.Args().Get(0), URL: c.Args().Get(1), CAFile: c.String("ca-file")}
	if err := m.Add(p); err != nil {
		return err
	}
	if c.Bool("use") {
		if err := m.Use(p.Name); err != nil {
			return err
		}
	}
	if err := saveProfiles(cfg, path, m); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added profile %s (%s)\n", p.Name, p.URL)
	return nil
}

func profileUse(c *cli.Context) error {
	name, err := requireArg(c, "NAME")
	if err != nil {
		return err
	}
	cfg, path, err := readConfigFile(c)
	if err != nil {
		return err
	}

	m := profileManager(cfg)
	if err := m.Use(name); err != nil {
		return err
	}
	if err := saveProfiles(cfg, path, m); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Using profile %s\n", name)
	return nil
}

func profileRemove(c *cli.Context) error {
	name, err := requireArg(c, "NAME")
	if err != nil {
		return err
	}
	cfg, path, err := readConfigFile(c)
	if err != nil {
		return err
	}

	m := profileManager(cfg)
	if err := m.Remove(name); err != nil {
		return err
	}
	if err := saveProfiles(cfg, path, m); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed profile %s\n", name)
	return nil
}
