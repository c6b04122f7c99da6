package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero config", Config{}, false},
		{"json debug", Config{Level: "debug", Format: "json"}, false},
		{"text warning", Config{Level: "warning", Format: "TEXT"}, false},
		{"unknown level", Config{Level: "loud"}, true},
		{"unknown format", Config{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_JSONRecord(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	l.Debug("request done", "method", "GET", "path", "/menu", "status", 200)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "request done" || rec["level"] != "DEBUG" || rec["path"] != "/menu" {
		t.Errorf("record = %v", rec)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		log   func(Logger)
		want  bool
	}{
		{"warn", func(l Logger) { l.Info("hidden") }, false},
		{"warn", func(l Logger) { l.Warn("shown") }, true},
		{"", func(l Logger) { l.Debug("hidden") }, false},
		{"debug", func(l Logger) { l.Debug("shown") }, true},
		{"error", func(l Logger) { l.Warn("hidden") }, false},
		{"error", func(l Logger) { l.Error("shown") }, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		l, err := New(Config{Level: tt.level, Output: &buf})
		if err != nil {
			t.Fatal(err)
		}
		tt.log(l)
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %q: logged = %v, want %v (%s)", tt.level, got, tt.want, buf.String())
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	l.With("component", "session").Info("restored", "user", "staff@spot.test")

	out := buf.String()
	for _, want := range []string{"msg=restored", "component=session", "user=staff@spot.test"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

type ctxKey struct{}

type ctxHandler struct {
	slog.Handler
	seen *any
}

func (h ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	*h.seen = ctx.Value(ctxKey{})
	return nil
}

func TestLogger_WithContext(t *testing.T) {
	var seen any
	l := wrap(slog.New(ctxHandler{Handler: slog.NewTextHandler(&bytes.Buffer{}, nil), seen: &seen}))

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	l.WithContext(ctx).Warn("slow")

	if seen != "req-1" {
		t.Errorf("handler saw %v, want the logger's context", seen)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("ParseLevel(trace) should fail")
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Output: &buf})
	SetDefault(l)
	Default().Info("from default")
	if !strings.Contains(buf.String(), "from default") {
		t.Errorf("SetDefault not applied: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped", "token", "tok1")
	if Slog(l) == nil {
		t.Error("Slog(Nop()) should not be nil")
	}
}

func TestSlog_Unwrap(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	Slog(l).Info("via slog", "password", "hunter2")
	if !strings.Contains(buf.String(), redactedValue) {
		t.Errorf("redaction should apply through Slog(), got %s", buf.String())
	}
}
