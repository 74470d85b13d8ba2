package record

import (
	"log/slog"
	"path/filepath"
	"testing"

	"quill/internal/canvas"
)

func openTestRecorder(t *testing.T, inner canvas.Surface) (*Recorder, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ops.db")
	rec, err := Open("sqlite3", dsn, "test-session", inner, slog.Default())
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec, dsn
}

func TestRecorderForwards(t *testing.T) {
	mem := canvas.NewMemory()
	rec, _ := openTestRecorder(t, mem)

	rec.MoveTo(0, 0)
	rec.LineTo(0, 50)
	rec.SetColor("red")
	rec.DrawCircle(25, 0, 0)

	if mem.Count("lineto") != 1 || mem.Count("circle") != 1 {
		t.Error("recorder did not forward calls to the inner surface")
	}
	if mem.Ops[2].Str != "red" {
		t.Errorf("forwarded color = %q, expected red", mem.Ops[2].Str)
	}
}

func TestRecordAndReplay(t *testing.T) {
	rec, dsn := openTestRecorder(t, canvas.NewMemory())

	rec.MoveTo(0, 0)
	rec.SetPenDown(true)
	rec.LineTo(10, 20)
	rec.SetColor("blue")
	rec.SetWidth(3)
	rec.DrawRectangle(40, 30, 5, 5)
	rec.DrawPolygon([]canvas.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}})
	rec.Clear()

	replayed := canvas.NewMemory()
	if err := Replay("sqlite3", dsn, "test-session", replayed); err != nil {
		t.Fatalf("Replay() error: %v", err)
	}

	want := []string{"moveto", "setpendown", "lineto", "setcolor", "setwidth", "rectangle", "polygon", "clear"}
	if len(replayed.Ops) != len(want) {
		t.Fatalf("replayed op count = %d, expected %d", len(replayed.Ops), len(want))
	}
	for i, name := range want {
		if replayed.Ops[i].Name != name {
			t.Errorf("replayed op %d = %q, expected %q", i, replayed.Ops[i].Name, name)
		}
	}

	if replayed.Ops[2].Args[0] != 10 || replayed.Ops[2].Args[1] != 20 {
		t.Errorf("lineto args = %v, expected [10 20]", replayed.Ops[2].Args)
	}
	if replayed.Ops[3].Str != "blue" {
		t.Errorf("setcolor arg = %q, expected blue", replayed.Ops[3].Str)
	}
	if len(replayed.Ops[6].Args) != 6 {
		t.Errorf("polygon args = %v, expected 3 flattened points", replayed.Ops[6].Args)
	}
}

func TestReplayOtherSession(t *testing.T) {
	rec, dsn := openTestRecorder(t, canvas.NewMemory())
	rec.LineTo(1, 1)

	replayed := canvas.NewMemory()
	if err := Replay("sqlite3", dsn, "unknown-session", replayed); err != nil {
		t.Fatalf("Replay() error: %v", err)
	}
	if len(replayed.Ops) != 0 {
		t.Errorf("replayed %d ops for an unknown session, expected none", len(replayed.Ops))
	}
}
