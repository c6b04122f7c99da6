package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/spot-go/internal/cli/output"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// MenuCommand returns the menu subcommand group.
func MenuCommand() *cli.Command {
	itemFlags := func(create bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Dish name", Required: create},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Short description", Required: create},
			&cli.Float64Flag{Name: "price", Usage: "Price"},
			&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: categoryUsage(), Value: defaultCategory(create)},
			&cli.StringFlag{Name: "image-url", Usage: "Image URL", Required: create},
			&cli.BoolFlag{Name: "featured", Usage: "Show on the home page"},
			&cli.BoolFlag{Name: "available", Usage: "Available to order", Value: create},
		}
	}

	return &cli.Command{
		Name:  "menu",
		Usage: "Browse and manage the menu",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the public menu",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"C"}, Usage: categoryUsage()},
					&cli.BoolFlag{Name: "group", Aliases: []string{"g"}, Usage: "Group items by category"},
				},
				Action: menuList,
			},
			{
				Name:   "manage",
				Usage:  "List every menu item, including unavailable ones (staff)",
				Action: menuManage,
			},
			{
				Name:   "create",
				Usage:  "Add a menu item (staff)",
				Flags:  itemFlags(true),
				Action: menuCreate,
			},
			{
				Name:      "update",
				Usage:     "Change fields of a menu item (staff)",
				ArgsUsage: "ITEM_ID",
				Flags:     itemFlags(false),
				Action:    menuUpdate,
			},
			{
				Name:      "toggle",
				Usage:     "Flip the availability of a menu item (staff)",
				ArgsUsage: "ITEM_ID",
				Action:    menuToggle,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a menu item (staff)",
				ArgsUsage: "ITEM_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Skip confirmation"},
				},
				Action: menuDelete,
			},
		},
	}
}

func categoryUsage() string {
	names := make([]string, len(domain.MenuCategories))
	for i, c := range domain.MenuCategories {
		names[i] = string(c)
	}
	return "Category: " + strings.Join(names, ", ")
}

func defaultCategory(create bool) string {
	if create {
		return string(domain.NewMenuItemInput().Category)
	}
	return ""
}

func parseCategory(s string) (domain.MenuCategory, error) {
	c, ok := domain.ParseMenuCategory(s)
	if !ok {
		return "", domain.ErrValidation.WithDetails(fmt.Sprintf("unknown category %q (%s)", s, categoryUsage()))
	}
	return c, nil
}

func menuList(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	var category domain.MenuCategory
	if v := c.String("category"); v != "" && !strings.EqualFold(v, "all") {
		if category, err = parseCategory(v); err != nil {
			return err
		}
	}

	spinner := env.spin(c, "Loading menu")
	items, err := env.Services.Menu.List(env.ctx(c))
	spinner.Stop()
	if err != nil {
		return failed(err, "Failed to load menu")
	}
	items = domain.FilterByCategory(items, category)

	if !c.Bool("group") {
		return env.Render(c, items)
	}

	groups := domain.GroupByCategory(items)
	if env.format(c) != output.FormatTable {
		byName := make(map[string][]domain.MenuItem, len(groups))
		for cat, list := range groups {
			byName[string(cat)] = list
		}
		return env.Render(c, byName)
	}
	first := true
	for _, cat := range domain.MenuCategories {
		list, ok := groups[cat]
		if !ok {
			continue
		}
		if !first {
			env.Printf("\n")
		}
		first = false
		env.Printf("%s\n", cat)
		if err := env.Render(c, list); err != nil {
			return err
		}
	}
	return nil
}

func menuManage(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}

	items, err := env.Services.Menu.ListManaged(ctx)
	if err != nil {
		return failed(err, "Unable to load dashboard")
	}
	return env.Render(c, items)
}

func menuCreate(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	in := domain.NewMenuItemInput()
	in.Title = c.String("title")
	in.Description = c.String("description")
	in.Price = c.Float64("price")
	in.ImageURL = c.String("image-url")
	in.IsFeatured = c.Bool("featured")
	in.IsAvailable = c.Bool("available")
	if in.Category, err = parseCategory(c.String("category")); err != nil {
		return err
	}
	if err := domain.Validate(in); err != nil {
		return err
	}

	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}
	item, err := env.Services.Menu.Create(ctx, in)
	if err != nil {
		return failed(err, "Unable to create menu item")
	}
	return env.Render(c, item)
}

func menuUpdate(c *cli.Context) error {
	id, err := requireArg(c, "ITEM_ID")
	if err != nil {
		return err
	}
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	var patch domain.MenuItemPatch
	if c.IsSet("title") {
		v := c.String("title")
		patch.Title = &v
	}
	if c.IsSet("description") {
		v := c.String("description")
		patch.Description = &v
	}
	if c.IsSet("price") {
		v := c.Float64("price")
		patch.Price = &v
	}
	if c.IsSet("category") {
		v, err := parseCategory(c.String("category"))
		if err != nil {
			return err
		}
		patch.Category = &v
	}
	if c.IsSet("image-url") {
		v := c.String("image-url")
		patch.ImageURL = &v
	}
	if c.IsSet("featured") {
		v := c.Bool("featured")
		patch.IsFeatured = &v
	}
	if c.IsSet("available") {
		v := c.Bool("available")
		patch.IsAvailable = &v
	}
	if patch.IsEmpty() {
		return domain.ErrMissingArgument.WithDetails("nothing to update; pass at least one field flag")
	}
	if err := domain.Validate(patch); err != nil {
		return err
	}

	ctx := env.ctx(c)
	if err := env.RequireSession(ctx); err != nil {
		return err
	}
	item, err := env.Services.Menu.Update(ctx, id, patch)
	if err != nil {
		return failed(err, "Unable to update menu item")
	}
	return env.Render(c, item)
}

func menuToggle(c *cli.Context) error {
	id, err := requireArg(c, "ITEM_ID")
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

	items, err := env.Services.Menu.ListManaged(ctx)
	if err != nil {
		return failed(err, "Unable to update availability")
	}
	var current *domain.MenuItem
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return &userError{msg: "Menu item not found"}
	}

	updated, err := env.Services.Menu.ToggleAvailability(ctx, *current)
	if err != nil {
		return failed(err, "Unable to update availability")
	}
	state := "unavailable"
	if updated.IsAvailable {
		state = "available"
	}
	env.Printf("%s is now %s\n", updated.Title, state)
	return nil
}

func menuDelete(c *cli.Context) error {
	id, err := requireArg(c, "ITEM_ID")
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
	if ok, err := confirmDelete(c, env, "menu item "+id); !ok || err != nil {
		return err
	}

	if err := env.Services.Menu.Delete(ctx, id); err != nil {
		return failed(err, "Unable to delete menu item")
	}
	env.Printf("Deleted menu item %s\n", id)
	return nil
}

// requireArg returns the first positional argument or ErrMissingArgument.
func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", domain.ErrMissingArgument.WithDetails(name)
	}
	return v, nil
}

// confirmDelete asks before a destructive call unless --force is set.
func confirmDelete(c *cli.Context, env *Env, what string) (bool, error) {
	if c.Bool("force") {
		return true, nil
	}
	ok, err := confirm(env.Streams, "Delete "+what+"?")
	if err != nil {
		return false, domain.ErrMissingArgument.WithDetails("confirmation required; rerun with --force").WithCause(err)
	}
	if !ok {
		env.Printf("Cancelled\n")
	}
	return ok, nil
}
