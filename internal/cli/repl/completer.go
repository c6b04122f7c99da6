package repl

import (
	"sort"
	"strings"
)

// Builtins are the commands the REPL handles itself.
var Builtins = []string{"exit", "history", "quit"}

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over commands, written as they are
// typed ("menu", "menu list"). The built-ins are always included.
func NewCompleter(commands []string) *Completer {
	seen := make(map[string]struct{}, len(commands)+len(Builtins))
	all := make([]string, 0, len(commands)+len(Builtins))
	for _, cmd := range append(append([]string{}, commands...), Builtins...) {
		cmd = strings.TrimSpace(cmd)
		if _, dup := seen[cmd]; dup || cmd == "" {
			continue
		}
		seen[cmd] = struct{}{}
		all = append(all, cmd)
	}
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
