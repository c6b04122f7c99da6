package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/config"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   "Show and edit the local configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:      "get",
				Usage:     "Print one configuration value",
				ArgsUsage: "KEY",
				Action:    configGet,
			},
			{
				Name:      "set",
				Usage:     "Change one configuration value and save the file",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration file",
				Action: configValidate,
			},
		},
	}
}

// configEntry is one row of config show.
type configEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func configFilePath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

// readConfigFile loads the file without flag overrides, so saving it
// back does not persist one-off flags.
func readConfigFile(c *cli.Context) (*config.CLIConfig, string, error) {
	path := configFilePath(c)
	cfg, err := config.Load(path, nil)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func configShow(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}

	entries := make([]configEntry, 0, len(config.Keys))
	for _, key := range config.Keys {
		v, err := config.Get(cfg, key)
		if err != nil {
			return err
		}
		entries = append(entries, configEntry{Key: key, Value: v})
	}
	for _, p := range sortedProfiles(cfg) {
		entries = append(entries, configEntry{Key: "profiles." + p.Name + ".url", Value: p.URL})
	}
	return render(c, cfg, c.App.Writer, entries)
}

func configPath(c *cli.Context) error {
	path := configFilePath(c)
	suffix := ""
	if _, err := os.Stat(path); os.IsNotExist(err) {
		suffix = " (not created yet)"
	}
	fmt.Fprintf(c.App.Writer, "%s%s\n", path, suffix)
	return nil
}

func configGet(c *cli.Context) error {
	key, err := requireArg(c, "KEY")
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	v, err := config.Get(cfg, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("usage: config set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	cfg, path, err := readConfigFile(c)
	if err != nil {
		return err
	}
	if err := config.Set(cfg, key, value); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Set %s in %s\n", key, path)
	return nil
}

func configValidate(c *cli.Context) error {
	if _, _, err := loadConfig(c); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Configuration %s is valid\n", configFilePath(c))
	return nil
}
