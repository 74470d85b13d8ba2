package canvas

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	defaultColor = "black"
	defaultWidth = 2.0
)

// SVG is a Surface that accumulates drawing commands and writes an SVG
// document on Present. Canvas coordinates are centered on the image; the
// y axis is flipped to match screen space.
type SVG struct {
	width  float64
	height float64
	output string

	color string
	pen   float64
	fill  bool

	penX float64
	penY float64

	elements []string
}

func NewSVG(width, height float64, output string) *SVG {
	return &SVG{
		width:  width,
		height: height,
		output: output,
		color:  defaultColor,
		pen:    defaultWidth,
	}
}

func (s *SVG) project(x, y float64) (float64, float64) {
	return s.width/2 + x, s.height/2 - y
}

func (s *SVG) MoveTo(x, y float64) {
	s.penX, s.penY = x, y
}

func (s *SVG) LineTo(x, y float64) {
	x1, y1 := s.project(s.penX, s.penY)
	x2, y2 := s.project(x, y)
	s.elements = append(s.elements, fmt.Sprintf(
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`,
		num(x1), num(y1), num(x2), num(y2), s.color, num(s.pen)))
	s.penX, s.penY = x, y
}

func (s *SVG) SetPenDown(bool) {}

func (s *SVG) SetColor(color string)  { s.color = color }
func (s *SVG) SetWidth(width float64) { s.pen = width }
func (s *SVG) SetFill(fill bool)      { s.fill = fill }

func (s *SVG) fillAttr() string {
	if s.fill {
		return s.color
	}
	return "none"
}

func (s *SVG) DrawCircle(radius, cx, cy float64) {
	x, y := s.project(cx, cy)
	s.elements = append(s.elements, fmt.Sprintf(
		`<circle cx="%s" cy="%s" r="%s" stroke="%s" stroke-width="%s" fill="%s"/>`,
		num(x), num(y), num(radius), s.color, num(s.pen), s.fillAttr()))
}

func (s *SVG) DrawRectangle(width, height, x, y float64) {
	cx, cy := s.project(x, y)
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" stroke="%s" stroke-width="%s" fill="%s"/>`,
		num(cx-width/2), num(cy-height/2), num(width), num(height),
		s.color, num(s.pen), s.fillAttr()))
}

func (s *SVG) DrawLine(x1, y1, x2, y2 float64) {
	px1, py1 := s.project(x1, y1)
	px2, py2 := s.project(x2, y2)
	s.elements = append(s.elements, fmt.Sprintf(
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`,
		num(px1), num(py1), num(px2), num(py2), s.color, num(s.pen)))
}

func (s *SVG) DrawPolygon(points []Point) {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		x, y := s.project(p.X, p.Y)
		coords = append(coords, num(x)+","+num(y))
	}
	s.elements = append(s.elements, fmt.Sprintf(
		`<polygon points="%s" stroke="%s" stroke-width="%s" fill="%s"/>`,
		strings.Join(coords, " "), s.color, num(s.pen), s.fillAttr()))
}

// DrawArc strokes an elliptical arc spanning angle degrees
// counterclockwise from the ellipse's rightmost point. width and height
// are the full axes of the ellipse centered at (cx, cy).
func (s *SVG) DrawArc(width, height, angle, cx, cy float64) {
	rx, ry := width/2, height/2
	if angle >= 360 || angle <= -360 {
		x, y := s.project(cx, cy)
		s.elements = append(s.elements, fmt.Sprintf(
			`<ellipse cx="%s" cy="%s" rx="%s" ry="%s" stroke="%s" stroke-width="%s" fill="%s"/>`,
			num(x), num(y), num(rx), num(ry), s.color, num(s.pen), s.fillAttr()))
		return
	}

	rad := angle * math.Pi / 180
	startX, startY := s.project(cx+rx, cy)
	endX, endY := s.project(cx+rx*math.Cos(rad), cy+ry*math.Sin(rad))

	largeArc := 0
	if math.Abs(angle) > 180 {
		largeArc = 1
	}
	// sweep flag 0 is counterclockwise in flipped screen space
	sweep := 0
	if angle < 0 {
		sweep = 1
	}

	s.elements = append(s.elements, fmt.Sprintf(
		`<path d="M %s %s A %s %s 0 %d %d %s %s" stroke="%s" stroke-width="%s" fill="%s"/>`,
		num(startX), num(startY), num(rx), num(ry), largeArc, sweep,
		num(endX), num(endY), s.color, num(s.pen), s.fillAttr()))
}

func (s *SVG) Clear() {
	s.elements = nil
}

func (s *SVG) Reset() {
	s.elements = nil
	s.color = defaultColor
	s.pen = defaultWidth
	s.fill = false
	s.penX, s.penY = 0, 0
}

// Present writes the accumulated drawing to the output file.
func (s *SVG) Present() error {
	var doc strings.Builder
	fmt.Fprintf(&doc,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	fmt.Fprintf(&doc, "  <rect width=\"100%%\" height=\"100%%\" fill=\"white\"/>\n")
	for _, el := range s.elements {
		doc.WriteString("  ")
		doc.WriteString(el)
		doc.WriteString("\n")
	}
	doc.WriteString("</svg>\n")

	return os.WriteFile(s.output, []byte(doc.String()), 0o644)
}

func num(v float64) string {
	// trim float noise from accumulated trig
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
