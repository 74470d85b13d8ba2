package canvas

import "log/slog"

// Trace is a Surface that logs every drawing command instead of
// rendering. Useful for dry runs and debugging scripts headlessly.
type Trace struct {
	log *slog.Logger
}

func NewTrace(log *slog.Logger) *Trace {
	return &Trace{log: log.With("component", "canvas")}
}

func (t *Trace) MoveTo(x, y float64) { t.log.Info("moveto", "x", x, "y", y) }
func (t *Trace) LineTo(x, y float64) { t.log.Info("lineto", "x", x, "y", y) }

func (t *Trace) SetPenDown(down bool)   { t.log.Info("setpendown", "down", down) }
func (t *Trace) SetColor(color string)  { t.log.Info("setcolor", "color", color) }
func (t *Trace) SetWidth(width float64) { t.log.Info("setwidth", "width", width) }
func (t *Trace) SetFill(fill bool)      { t.log.Info("setfill", "fill", fill) }

func (t *Trace) DrawCircle(radius, cx, cy float64) {
	t.log.Info("circle", "radius", radius, "cx", cx, "cy", cy)
}

func (t *Trace) DrawRectangle(width, height, x, y float64) {
	t.log.Info("rectangle", "width", width, "height", height, "x", x, "y", y)
}

func (t *Trace) DrawLine(x1, y1, x2, y2 float64) {
	t.log.Info("line", "x1", x1, "y1", y1, "x2", x2, "y2", y2)
}

func (t *Trace) DrawPolygon(points []Point) {
	t.log.Info("polygon", "points", len(points))
}

func (t *Trace) DrawArc(width, height, angle, cx, cy float64) {
	t.log.Info("arc", "width", width, "height", height, "angle", angle, "cx", cx, "cy", cy)
}

func (t *Trace) Clear() { t.log.Info("clear") }
func (t *Trace) Reset() { t.log.Info("reset") }

func (t *Trace) Present() error {
	t.log.Info("present")
	return nil
}
