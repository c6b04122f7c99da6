// Package main provides the entry point for spot-cli.
//
// spot-cli is the command-line client for the Spot restaurant API. Guests
// can browse the menu, book a table and send a message; staff sign in to
// manage the menu, reservations and the inbox.
//
// Usage:
//
//	spot-cli menu list --group
//	spot-cli reserve --name "Ada" --email ada@example.com --phone 555-0100 \
//	    --date 2030-06-01 --time "7:00 PM" --guests 4
//	spot-cli login --email staff@spot.test
//	spot-cli dashboard -o json
//	spot-cli repl
//
// The CLI supports both single-command mode and interactive REPL mode.
package main
