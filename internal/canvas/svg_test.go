package canvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSVGPresentWritesDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "drawing.svg")
	s := NewSVG(800, 600, out)

	s.MoveTo(0, 0)
	s.LineTo(0, 100)
	s.SetColor("red")
	s.DrawCircle(50, 0, 0)

	if err := s.Present(); err != nil {
		t.Fatalf("Present() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc := string(data)

	if !strings.Contains(doc, "<svg") || !strings.Contains(doc, "</svg>") {
		t.Error("output is not an SVG document")
	}
	if !strings.Contains(doc, "<line") {
		t.Error("stroked line missing from output")
	}
	if !strings.Contains(doc, `stroke="red"`) {
		t.Error("circle should be stroked with the current color")
	}
}

func TestSVGCoordinateProjection(t *testing.T) {
	s := NewSVG(800, 600, "")

	// canvas origin lands at the image center
	s.DrawCircle(10, 0, 0)
	if !strings.Contains(s.elements[0], `cx="400"`) || !strings.Contains(s.elements[0], `cy="300"`) {
		t.Errorf("origin projected to %q, expected image center 400,300", s.elements[0])
	}

	// positive y is up, so it shrinks the screen y
	s.DrawCircle(10, 0, 100)
	if !strings.Contains(s.elements[1], `cy="200"`) {
		t.Errorf("(0, 100) projected to %q, expected cy 200", s.elements[1])
	}
}

func TestSVGFillState(t *testing.T) {
	s := NewSVG(100, 100, "")

	s.DrawCircle(10, 0, 0)
	if !strings.Contains(s.elements[0], `fill="none"`) {
		t.Error("shapes should be unfilled by default")
	}

	s.SetColor("blue")
	s.SetFill(true)
	s.DrawRectangle(20, 10, 0, 0)
	if !strings.Contains(s.elements[1], `fill="blue"`) {
		t.Error("filled shapes should use the pen color")
	}
}

func TestSVGReset(t *testing.T) {
	s := NewSVG(100, 100, "")

	s.SetColor("green")
	s.SetWidth(7)
	s.LineTo(10, 10)
	s.Reset()

	if len(s.elements) != 0 {
		t.Error("reset should drop accumulated elements")
	}
	if s.color != defaultColor || s.pen != defaultWidth {
		t.Error("reset should restore the default pen")
	}
}
