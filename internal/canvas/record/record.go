// Package record persists drawing commands to a SQL database so a
// session can be replayed later onto any surface. The schema is plain
// enough to work across the supported drivers.
package record

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"quill/internal/canvas"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS drawing_ops (
	session TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	op      TEXT NOT NULL,
	args    TEXT NOT NULL
)`

// Recorder is a Surface that forwards every call to an inner surface
// while appending it to the database. Recording failures are logged and
// do not interrupt drawing.
type Recorder struct {
	inner     canvas.Surface
	db        *sql.DB
	session   string
	seq       int
	insertSQL string
	log       *slog.Logger
}

// bindvars rewrites ? placeholders to the $n form postgres expects.
func bindvars(driver, query string) string {
	if driver != "postgres" {
		return query
	}
	var out strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&out, "$%d", n)
			continue
		}
		out.WriteRune(ch)
	}
	return out.String()
}

// Open connects to the database named by driver ("sqlite3", "mysql" or
// "postgres") and dsn, creates the schema if needed, and returns a
// Recorder wrapping inner.
func Open(driver, dsn, session string, inner canvas.Surface, log *slog.Logger) (*Recorder, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reaching %s database: %w", driver, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Recorder{
		inner:     inner,
		db:        db,
		session:   session,
		insertSQL: bindvars(driver, "INSERT INTO drawing_ops (session, seq, op, args) VALUES (?, ?, ?, ?)"),
		log:       log.With("component", "record", "session", session),
	}, nil
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

func (r *Recorder) append(op canvas.Op) {
	r.seq++
	args, err := json.Marshal(op)
	if err != nil {
		r.log.Error("encoding op", "op", op.Name, "error", err)
		return
	}
	_, err = r.db.Exec(r.insertSQL, r.session, r.seq, op.Name, string(args))
	if err != nil {
		r.log.Error("recording op", "op", op.Name, "seq", r.seq, "error", err)
	}
}

func (r *Recorder) MoveTo(x, y float64) {
	r.append(canvas.Op{Name: "moveto", Args: []float64{x, y}})
	r.inner.MoveTo(x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.append(canvas.Op{Name: "lineto", Args: []float64{x, y}})
	r.inner.LineTo(x, y)
}

func (r *Recorder) SetPenDown(down bool) {
	r.append(canvas.Op{Name: "setpendown", Str: boolStr(down)})
	r.inner.SetPenDown(down)
}

func (r *Recorder) SetColor(color string) {
	r.append(canvas.Op{Name: "setcolor", Str: color})
	r.inner.SetColor(color)
}

func (r *Recorder) SetWidth(width float64) {
	r.append(canvas.Op{Name: "setwidth", Args: []float64{width}})
	r.inner.SetWidth(width)
}

func (r *Recorder) SetFill(fill bool) {
	r.append(canvas.Op{Name: "setfill", Str: boolStr(fill)})
	r.inner.SetFill(fill)
}

func (r *Recorder) DrawCircle(radius, cx, cy float64) {
	r.append(canvas.Op{Name: "circle", Args: []float64{radius, cx, cy}})
	r.inner.DrawCircle(radius, cx, cy)
}

func (r *Recorder) DrawRectangle(width, height, x, y float64) {
	r.append(canvas.Op{Name: "rectangle", Args: []float64{width, height, x, y}})
	r.inner.DrawRectangle(width, height, x, y)
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.append(canvas.Op{Name: "line", Args: []float64{x1, y1, x2, y2}})
	r.inner.DrawLine(x1, y1, x2, y2)
}

func (r *Recorder) DrawPolygon(points []canvas.Point) {
	args := make([]float64, 0, len(points)*2)
	for _, p := range points {
		args = append(args, p.X, p.Y)
	}
	r.append(canvas.Op{Name: "polygon", Args: args})
	r.inner.DrawPolygon(points)
}

func (r *Recorder) DrawArc(width, height, angle, cx, cy float64) {
	r.append(canvas.Op{Name: "arc", Args: []float64{width, height, angle, cx, cy}})
	r.inner.DrawArc(width, height, angle, cx, cy)
}

func (r *Recorder) Clear() {
	r.append(canvas.Op{Name: "clear"})
	r.inner.Clear()
}

func (r *Recorder) Reset() {
	r.append(canvas.Op{Name: "reset"})
	r.inner.Reset()
}

func (r *Recorder) Present() error {
	r.append(canvas.Op{Name: "present"})
	return r.inner.Present()
}

// Replay reads a recorded session in order and applies it to target.
func Replay(driver, dsn, session string, target canvas.Surface) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", driver, err)
	}
	defer db.Close()

	rows, err := db.Query(
		bindvars(driver, "SELECT args FROM drawing_ops WHERE session = ? ORDER BY seq"),
		session)
	if err != nil {
		return fmt.Errorf("querying session %q: %w", session, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("scanning op: %w", err)
		}
		var op canvas.Op
		if err := json.Unmarshal([]byte(raw), &op); err != nil {
			return fmt.Errorf("decoding op: %w", err)
		}
		if err := apply(target, op); err != nil {
			return err
		}
	}
	return rows.Err()
}

func apply(target canvas.Surface, op canvas.Op) error {
	argn := func(n int) bool { return len(op.Args) >= n }

	switch op.Name {
	case "moveto":
		if argn(2) {
			target.MoveTo(op.Args[0], op.Args[1])
		}
	case "lineto":
		if argn(2) {
			target.LineTo(op.Args[0], op.Args[1])
		}
	case "setpendown":
		target.SetPenDown(op.Str == "true")
	case "setcolor":
		target.SetColor(op.Str)
	case "setwidth":
		if argn(1) {
			target.SetWidth(op.Args[0])
		}
	case "setfill":
		target.SetFill(op.Str == "true")
	case "circle":
		if argn(3) {
			target.DrawCircle(op.Args[0], op.Args[1], op.Args[2])
		}
	case "rectangle":
		if argn(4) {
			target.DrawRectangle(op.Args[0], op.Args[1], op.Args[2], op.Args[3])
		}
	case "line":
		if argn(4) {
			target.DrawLine(op.Args[0], op.Args[1], op.Args[2], op.Args[3])
		}
	case "polygon":
		points := make([]canvas.Point, 0, len(op.Args)/2)
		for i := 0; i+1 < len(op.Args); i += 2 {
			points = append(points, canvas.Point{X: op.Args[i], Y: op.Args[i+1]})
		}
		target.DrawPolygon(points)
	case "arc":
		if argn(5) {
			target.DrawArc(op.Args[0], op.Args[1], op.Args[2], op.Args[3], op.Args[4])
		}
	case "clear":
		target.Clear()
	case "reset":
		target.Reset()
	case "present":
		return target.Present()
	default:
		return fmt.Errorf("unknown recorded op %q", op.Name)
	}
	return nil
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
