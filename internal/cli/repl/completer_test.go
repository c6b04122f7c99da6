package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"menu", "menu list", "menu manage", "messages", "messages list", "login", "menu"})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"menu ", []string{"menu list", "menu manage"}},
		{"me", []string{"menu", "menu list", "menu manage", "messages", "messages list"}},
		{"lo", []string{"login"}},
		{"q", []string{"quit"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_IncludesBuiltins(t *testing.T) {
	c := NewCompleter(nil)
	for _, b := range Builtins {
		if got := c.Complete(b); len(got) != 1 || got[0] != b {
			t.Errorf("Complete(%q) = %v", b, got)
		}
	}
}
