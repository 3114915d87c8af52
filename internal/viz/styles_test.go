package viz

import (
	"math"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#B7C9E2", 0xb7, 0xc9, 0xe2},
		{"#000000", 0, 0, 0},
		{"bogus", 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b := parseHex(tt.in)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHex(%q) = %d,%d,%d", tt.in, r, g, b)
			}
		})
	}
	if hexColor(300, -4, 171) != "#ff00ab" {
		t.Errorf("unexpected hexColor %s", hexColor(300, -4, 171))
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").Name != "pastel" {
		t.Error("unknown theme should fall back to pastel")
	}
	if len(ThemePastel.Palette) != 10 {
		t.Errorf("expected one pastel color per visual, got %d", len(ThemePastel.Palette))
	}
	if got := ThemeMono.ColorIndex(7); got != 1 {
		t.Errorf("expected visual 7 to wrap to 1 in mono, got %d", got)
	}
	if got := (Theme{}).ColorIndex(3); got != NoColor {
		t.Errorf("empty palette should give NoColor, got %d", got)
	}

	SetTheme("mono")
	NextTheme()
	if CurrentTheme.Name != "pastel" {
		t.Errorf("expected wrap to pastel, got %s", CurrentTheme.Name)
	}
}

func TestBars(t *testing.T) {
	if ProgressBar(2, 4) == "" || SparklineChart(nil, 5) != "─────" {
		t.Error("unexpected bar rendering")
	}
}

func TestFillFraction(t *testing.T) {
	vp := dynamo.Viewport{Width: 100, Height: 100}
	views := []dynamo.BodyView{{Radius: 10}, {Radius: 10}}
	want := 2 * math.Pi * 100 / 10000
	if got := fillFraction(views, vp); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}
