package canvas

// Op is one recorded surface call. Args holds the numeric arguments in
// call order; Str holds the string argument of SetColor, and "true" or
// "false" for the boolean setters.
type Op struct {
	Name string
	Args []float64
	Str  string
}

// Memory is a Surface that records every call. It backs tests and the
// replay pipeline.
type Memory struct {
	Ops       []Op
	Presented int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) record(name string, str string, args ...float64) {
	m.Ops = append(m.Ops, Op{Name: name, Args: args, Str: str})
}

func (m *Memory) MoveTo(x, y float64) { m.record("moveto", "", x, y) }
func (m *Memory) LineTo(x, y float64) { m.record("lineto", "", x, y) }

func (m *Memory) SetPenDown(down bool)   { m.record("setpendown", boolStr(down)) }
func (m *Memory) SetColor(color string)  { m.record("setcolor", color) }
func (m *Memory) SetWidth(width float64) { m.record("setwidth", "", width) }
func (m *Memory) SetFill(fill bool)      { m.record("setfill", boolStr(fill)) }

func (m *Memory) DrawCircle(radius, cx, cy float64) { m.record("circle", "", radius, cx, cy) }
func (m *Memory) DrawRectangle(width, height, x, y float64) {
	m.record("rectangle", "", width, height, x, y)
}
func (m *Memory) DrawLine(x1, y1, x2, y2 float64) { m.record("line", "", x1, y1, x2, y2) }

func (m *Memory) DrawPolygon(points []Point) {
	args := make([]float64, 0, len(points)*2)
	for _, p := range points {
		args = append(args, p.X, p.Y)
	}
	m.record("polygon", "", args...)
}

func (m *Memory) DrawArc(width, height, angle, cx, cy float64) {
	m.record("arc", "", width, height, angle, cx, cy)
}

func (m *Memory) Clear() { m.record("clear", "") }
func (m *Memory) Reset() { m.record("reset", "") }

func (m *Memory) Present() error {
	m.Presented++
	return nil
}

// Count reports how many recorded ops carry the given name.
func (m *Memory) Count(name string) int {
	n := 0
	for _, op := range m.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
