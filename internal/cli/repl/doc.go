// Package repl provides interactive mode for spot-cli.
//
// The loop reads one line at a time, splits it into arguments with shell
// style quoting and hands them to an executor, normally the spot-cli
// command tree. The caller owns execution; this package owns prompting,
// history and completion:
//
//   - repl.go: read loop, built-in commands and line splitting
//   - completer.go: prefix completion over the command tree
//   - history.go: history persisted to ~/.spot/history
//
// A line ending in "?" lists the completions for what precedes it.
package repl
