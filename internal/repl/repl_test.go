package repl

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"quill/internal/canvas"
)

func runSession(t *testing.T, input string) (*canvas.Memory, string) {
	t.Helper()
	mem := canvas.NewMemory()
	var out strings.Builder

	s := New(mem, slog.Default())
	if err := s.Start(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return mem, out.String()
}

func TestSessionEvaluatesLines(t *testing.T) {
	mem, out := runSession(t, "var x = 30\nforward(x)\nx + 12\nexit\n")

	if mem.Count("lineto") != 1 {
		t.Errorf("lineto count = %d, expected 1", mem.Count("lineto"))
	}
	if !strings.Contains(out, "42") {
		t.Errorf("output %q should echo the value 42", out)
	}
}

func TestSessionKeepsStateAcrossLines(t *testing.T) {
	_, out := runSession(t, "function triple(n) {\\\nreturn n * 3\\\n}\ntriple(7)\nexit\n")
	if !strings.Contains(out, "21") {
		t.Errorf("output %q should contain 21", out)
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	mem, out := runSession(t, "1 / 0\nforward(10)\nexit\n")

	if !strings.Contains(out, "DivisionByZero") {
		t.Errorf("output %q should report the division error", out)
	}
	if mem.Count("lineto") != 1 {
		t.Error("session should keep working after an error")
	}
}

func TestSessionMetaCommands(t *testing.T) {
	mem, out := runSession(t, "help\nclear\nexit\n")

	if !strings.Contains(out, "forward(d)") {
		t.Errorf("help output missing from %q", out)
	}
	if mem.Count("clear") != 1 {
		t.Error("clear meta command should clear the surface")
	}
	if !strings.Contains(out, "bye") {
		t.Error("exit should say goodbye")
	}
}

func TestSessionSemicolons(t *testing.T) {
	mem, _ := runSession(t, "forward(10); right(90); forward(10)\nexit\n")
	if mem.Count("lineto") != 2 {
		t.Errorf("lineto count = %d, expected 2", mem.Count("lineto"))
	}
}
