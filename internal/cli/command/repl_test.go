package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPL(t *testing.T) {
	tc := newTestCLI(t)
	seedMenu(tc)

	input := strings.Join([]string{
		"menu list --category Desserts",
		"login --email " + staffEmail + " --password " + staffPassword,
		"whoami",
		"repl",
		"exit",
	}, "\n") + "\n"

	r := tc.runInput(input, "repl")
	require.NoError(t, r.err, r.stderr)

	assert.Contains(t, r.stdout, "spot> ")
	assert.Contains(t, r.stdout, "Tiramisu")
	assert.NotContains(t, r.stdout, "Burrata")
	assert.Contains(t, r.stdout, "Signed in as Sam Host <staff@spot.test>")
	assert.Contains(t, r.stdout, "spot(staff@spot.test)> ")
	assert.Contains(t, r.stderr, "error: already in interactive mode")

	data, err := os.ReadFile(filepath.Join(tc.dir, ".spot", "history"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "whoami\n")
}

func TestREPL_PromptsReadFromSameInput(t *testing.T) {
	tc := newTestCLI(t)

	input := "login " + staffEmail + "\n" + staffPassword + "\nlogout\n"
	r := tc.runInput(input, "repl")
	require.NoError(t, r.err, r.stderr)

	assert.Contains(t, r.stderr, "Password: ")
	assert.Contains(t, r.stdout, "Signed in as Sam Host")
	assert.Contains(t, r.stdout, "Signed out")
	assert.NotContains(t, r.stderr, "error:")
}

func TestREPL_ErrorsDoNotEndTheLoop(t *testing.T) {
	tc := newTestCLI(t)

	r := tc.runInput("dashboard\nreserve --slots\n", "repl")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "error: not signed in: run 'spot-cli login' first")
	assert.Contains(t, r.stdout, "07:00 PM")
}
