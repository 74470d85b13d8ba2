package canvas

import "math"

// Turtle tracks the pen's position and heading and translates relative
// movement commands into Surface calls. Heading is in degrees with 0
// pointing right and 90 pointing up; the turtle starts at the origin
// facing up with the pen down.
type Turtle struct {
	surface Surface

	x       float64
	y       float64
	heading float64
	penDown bool
}

func NewTurtle(surface Surface) *Turtle {
	t := &Turtle{surface: surface}
	t.home()
	return t
}

func (t *Turtle) home() {
	t.x, t.y = 0, 0
	t.heading = 90
	t.penDown = true
	t.surface.MoveTo(0, 0)
	t.surface.SetPenDown(true)
}

// Forward moves along the current heading, drawing when the pen is down.
func (t *Turtle) Forward(distance float64) {
	rad := t.heading * math.Pi / 180
	t.Goto(t.x+distance*math.Cos(rad), t.y+distance*math.Sin(rad))
}

func (t *Turtle) Backward(distance float64) {
	t.Forward(-distance)
}

// Left rotates counterclockwise by the given degrees.
func (t *Turtle) Left(degrees float64) {
	t.heading = normalizeDegrees(t.heading + degrees)
}

// Right rotates clockwise by the given degrees.
func (t *Turtle) Right(degrees float64) {
	t.heading = normalizeDegrees(t.heading - degrees)
}

// Goto moves the pen to an absolute position, drawing when the pen is
// down.
func (t *Turtle) Goto(x, y float64) {
	if t.penDown {
		t.surface.LineTo(x, y)
	} else {
		t.surface.MoveTo(x, y)
	}
	t.x, t.y = x, y
}

// MoveTo repositions without drawing regardless of pen state.
func (t *Turtle) MoveTo(x, y float64) {
	t.surface.MoveTo(x, y)
	t.x, t.y = x, y
}

func (t *Turtle) PenUp() {
	t.penDown = false
	t.surface.SetPenDown(false)
}

func (t *Turtle) PenDown() {
	t.penDown = true
	t.surface.SetPenDown(true)
}

func (t *Turtle) IsPenDown() bool { return t.penDown }

func (t *Turtle) Position() (x, y float64) { return t.x, t.y }

func (t *Turtle) Heading() float64 { return t.heading }

func (t *Turtle) SetHeading(degrees float64) {
	t.heading = normalizeDegrees(degrees)
}

// Reset erases the drawing and sends the turtle home.
func (t *Turtle) Reset() {
	t.surface.Reset()
	t.home()
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
