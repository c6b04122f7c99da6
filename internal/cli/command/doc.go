// Package command defines the spot-cli command tree on urfave/cli/v2.
//
// Guest commands (menu list, reserve, contact) work without signing in.
// Staff commands restore the saved session first and refuse to call the
// API when nobody is signed in, the way the admin pages redirect to the
// login form.
//
// The Env holding the HTTP client, credential store and session manager
// is built on first use and closed when the app exits. The REPL builds a
// fresh command tree per line over the same Env.
package command
