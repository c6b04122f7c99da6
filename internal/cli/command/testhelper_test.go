package command

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/spot-go/internal/cli/apitest"
	"github.com/yndnr/spot-go/internal/core/domain"
)

const (
	staffEmail    = "staff@spot.test"
	staffPassword = "secret"
	staffToken    = "tok-staff"
)

var staffUser = domain.User{ID: "u1", Name: "Sam Host", Email: staffEmail}

// testCLI runs spot-cli against a fake API with HOME in a temp dir.
type testCLI struct {
	t       *testing.T
	srv     *apitest.Server
	dir     string
	cfgPath string
}

// result is the outcome of one spot-cli invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// message is what main would print for err.
func (r result) message() string {
	if r.err == nil {
		return ""
	}
	var b bytes.Buffer
	PrintError(&b, r.err)
	return strings.TrimSpace(b.String())
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SPOT_CREDENTIAL_SECRET", "")
	t.Chdir(dir)

	srv := apitest.New(t)
	srv.AddAccount(staffEmail, staffPassword, staffToken, staffUser)

	return &testCLI{
		t:       t,
		srv:     srv,
		dir:     dir,
		cfgPath: filepath.Join(dir, "cli.yaml"),
	}
}

// run executes spot-cli against the fake API.
func (c *testCLI) run(args ...string) result {
	return c.runInput("", args...)
}

// runInput executes spot-cli with stdin set to input.
func (c *testCLI) runInput(input string, args ...string) result {
	return c.exec(input, append([]string{"--api-url", c.srv.URL}, args...)...)
}

// runLocal executes spot-cli without overriding the API URL.
func (c *testCLI) runLocal(args ...string) result {
	return c.exec("", args...)
}

func (c *testCLI) exec(input string, args ...string) result {
	c.t.Helper()

	var out, errOut bytes.Buffer
	app := NewApp(Streams{In: strings.NewReader(input), Out: &out, Err: &errOut})
	argv := append([]string{"spot-cli", "--config", c.cfgPath}, args...)
	err := app.RunContext(context.Background(), argv)
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// login signs the staff account in and fails the test otherwise.
func (c *testCLI) login() {
	c.t.Helper()
	r := c.run("login", "--email", staffEmail, "--password", staffPassword)
	if r.err != nil {
		c.t.Fatalf("login failed: %v (stderr %q)", r.err, r.stderr)
	}
}
