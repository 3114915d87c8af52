package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/viz"
)

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			if err.Error() == "EOF" {
				return
			}
			t.Fatalf("svg is not well-formed: %v", err)
		}
	}
}

func TestFrameToSVG(t *testing.T) {
	vp := dynamo.Viewport{Width: 200, Height: 100}
	views := []dynamo.BodyView{
		{Pos: dynamo.Vec2{X: 10, Y: 20}, Radius: 5, Visual: 0},
		{Pos: dynamo.Vec2{X: 50, Y: 50}, Radius: 20, Visual: 3},
	}
	svg := FrameToSVG(views, vp, []string{"#111111", "#222222"})
	wellFormed(t, svg)

	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 circles, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `cx="15.00" cy="25.00" r="5.00" fill="#111111"`) {
		t.Error("first body drawn at the wrong place")
	}
	if !strings.Contains(svg, `fill="#222222"`) {
		t.Error("visual 3 should wrap to the second palette entry")
	}
	if !strings.Contains(svg, `width="200" height="100"`) {
		t.Error("svg should use viewport size")
	}
}

func TestTrailsToSVG(t *testing.T) {
	vp := dynamo.Viewport{Width: 100, Height: 100}
	trails := [][]dynamo.Vec2{
		{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}},
		{{X: 5, Y: 5}},
	}
	svg := TrailsToSVG(trails, vp, ThemePalette(viz.ThemePastel))
	wellFormed(t, svg)

	if strings.Count(svg, "<path") != 1 {
		t.Errorf("expected single-point trails to be skipped")
	}
	if !strings.Contains(svg, "M1.0,1.0 L2.0,2.0 L3.0,3.0") {
		t.Error("trail path mismatch")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1, nil) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Paint(1, 1, 0)
	c.Set(6, 6)
	svg := CanvasToSVG(c, 2, []string{"#abcdef"})
	wellFormed(t, svg)

	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `fill="#abcdef"`) || !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("expected one palette dot and one plain dot")
	}
}
