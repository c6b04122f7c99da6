package command

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/spot-go/internal/core/domain"
)

func seedMenu(tc *testCLI) {
	tc.srv.AddMenuItem(domain.MenuItem{ID: "m1", Title: "Burrata", Price: 14, Category: domain.CategoryAppetizers, IsAvailable: true})
	tc.srv.AddMenuItem(domain.MenuItem{ID: "m2", Title: "Tiramisu", Price: 9, Category: domain.CategoryDesserts, IsAvailable: true})
}

func TestMenuList(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)

	r := tc.run("menu", "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Burrata")
	assert.Contains(t, r.stdout, "Tiramisu")
	assert.False(t, tc.srv.Last().HasBearer(staffToken))
}

func TestMenuList_Category(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)

	r := tc.run("-o", "json", "menu", "list", "--category", "desserts")
	require.NoError(t, r.err)

	var items []domain.MenuItem
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Tiramisu", items[0].Title)

	r = tc.run("menu", "list", "--category", "Soups")
	require.Error(t, r.err)
	assert.Contains(t, r.message(), "unknown category")
}

func TestMenuList_Group(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)

	r := tc.run("menu", "list", "--group")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Appetizers\n")
	assert.Contains(t, r.stdout, "Desserts\n")
	assert.Less(t, strings.Index(r.stdout, "Appetizers"), strings.Index(r.stdout, "Desserts"))
}

func TestMenuList_ServerError(t *testing.T) {
	tc := newTestCLI(t)
	tc.srv.Respond(http.MethodGet, "/menu", http.StatusInternalServerError, "<html>oops</html>")

	r := tc.run("menu", "list")
	assert.Equal(t, "error: Request failed", r.message())
}

func TestMenuStaffCommands_RequireLogin(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)

	for _, args := range [][]string{
		{"menu", "manage"},
		{"menu", "toggle", "m1"},
		{"menu", "delete", "--force", "m1"},
		{"menu", "update", "--price", "3", "m1"},
	} {
		tc.srv.Reset()
		r := tc.run(args...)
		assert.Equal(t, "error: not signed in: run 'spot-cli login' first", r.message(), args)
		assert.Empty(t, tc.srv.Requests(), "no API call for %v", args)
	}
}

func TestMenuCreate(t *testing.T) {
	tc := newTestCLI(t)
	tc.login()

	r := tc.run("-o", "json", "menu", "create",
		"--title", "Panna Cotta",
		"--description", "Vanilla, berries",
		"--price", "8.5",
		"--category", "Desserts",
		"--image-url", "https://img.spot.test/panna.jpg")
	require.NoError(t, r.err, r.stderr)

	var item domain.MenuItem
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &item))
	assert.Equal(t, "Panna Cotta", item.Title)
	assert.Equal(t, domain.CategoryDesserts, item.Category)
	assert.True(t, item.IsAvailable)

	last := tc.srv.Last()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.True(t, last.HasBearer(staffToken))
}

func TestMenuCreate_MissingFlags(t *testing.T) {
	tc := newTestCLI(t)
	tc.login()
	tc.srv.Reset()

	r := tc.run("menu", "create", "--title", "Soup")
	require.Error(t, r.err)
	assert.Empty(t, tc.srv.Requests())
}

func TestMenuUpdate(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)
	tc.login()

	r := tc.run("-o", "json", "menu", "update", "--price", "15.5", "m1")
	require.NoError(t, r.err, r.stderr)

	last := tc.srv.Last()
	assert.Equal(t, http.MethodPatch, last.Method)
	assert.Equal(t, "/menu/m1", last.Path)
	assert.JSONEq(t, `{"price":15.5}`, string(last.Body))

	r = tc.run("menu", "update", "m1")
	require.Error(t, r.err)
	assert.Contains(t, r.message(), "nothing to update")
}

func TestMenuToggle(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)
	tc.login()

	r := tc.run("menu", "toggle", "m2")
	require.NoError(t, r.err, r.stderr)
	assert.Equal(t, "Tiramisu is now unavailable\n", r.stdout)
	assert.JSONEq(t, `{"isAvailable":false}`, string(tc.srv.Last().Body))

	r = tc.run("menu", "toggle", "m404")
	assert.Equal(t, "error: Menu item not found", r.message())
}

func TestMenuDelete(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)
	tc.login()

	r := tc.runInput("n\n", "menu", "delete", "m1")
	require.NoError(t, r.err)
	assert.Equal(t, "Cancelled\n", r.stdout)
	assert.NotEqual(t, http.MethodDelete, tc.srv.Last().Method)

	r = tc.runInput("y\n", "menu", "delete", "m1")
	require.NoError(t, r.err)
	assert.Equal(t, "Deleted menu item m1\n", r.stdout)
	assert.Equal(t, http.MethodDelete, tc.srv.Last().Method)

	r = tc.run("menu", "delete", "--force", "m1")
	assert.Equal(t, "error: Menu item not found", r.message())

	tc.srv.Respond(http.MethodDelete, "/menu/m2", http.StatusInternalServerError, map[string]string{"message": ""})
	r = tc.run("menu", "rm", "-f", "m2")
	assert.Equal(t, "error: Unable to delete menu item", r.message())
}

func TestMenuDelete_MissingID(t *testing.T) {
	tc := newTestCLI(t)

	r := tc.run("menu", "delete")
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, domain.ErrMissingArgument)
}
