// Package canvas abstracts the drawing backend away from script
// evaluation. The evaluator issues pen movements and shape commands
// against a Surface; implementations render them to SVG, log them or
// record them for replay.
package canvas

// Point is a position in canvas coordinates. The origin is the canvas
// center, x grows rightward and y grows upward.
type Point struct {
	X float64
	Y float64
}

// Surface receives drawing commands in canvas coordinates. Pen state
// (color, width, fill) applies to every subsequent stroke until changed.
type Surface interface {
	// MoveTo repositions the pen without drawing.
	MoveTo(x, y float64)
	// LineTo strokes from the current pen position to (x, y).
	LineTo(x, y float64)

	SetPenDown(down bool)
	SetColor(color string)
	SetWidth(width float64)
	SetFill(fill bool)

	DrawCircle(radius, cx, cy float64)
	DrawRectangle(width, height, x, y float64)
	DrawLine(x1, y1, x2, y2 float64)
	DrawPolygon(points []Point)
	DrawArc(width, height, angle, cx, cy float64)

	// Clear erases everything drawn so far, keeping pen state.
	Clear()
	// Reset erases the drawing and restores default pen state.
	Reset()
	// Present finalizes the drawing, flushing it to its destination.
	Present() error
}
