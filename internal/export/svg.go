package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/viz"
)

const background = "#0a0a0a"

// ThemePalette returns the theme's visual colors as hex strings.
func ThemePalette(t viz.Theme) []string {
	out := make([]string, len(t.Palette))
	for i, c := range t.Palette {
		out[i] = string(c)
	}
	return out
}

func paletteColor(palette []string, v int) string {
	if len(palette) == 0 {
		return "#ffffff"
	}
	if v < 0 {
		v = -v
	}
	return palette[v%len(palette)]
}

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// FrameToSVG draws one snapshot in viewport units, one circle per body in
// snapshot order.
func FrameToSVG(views []dynamo.BodyView, vp dynamo.Viewport, palette []string) string {
	var sb strings.Builder
	header(&sb, vp.Width, vp.Height)

	sb.WriteString("<g stroke=\"#000000\" stroke-opacity=\"0.25\">\n")
	for i, v := range views {
		c := v.Center()
		sb.WriteString(fmt.Sprintf(`<circle id="body-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, i, c.X, c.Y, v.Radius, paletteColor(palette, int(v.Visual))))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailsToSVG draws recorded center trails, one polyline per body. Trails
// with fewer than two points are skipped.
func TrailsToSVG(trails [][]dynamo.Vec2, vp dynamo.Viewport, palette []string) string {
	var sb strings.Builder
	header(&sb, vp.Width, vp.Height)

	for i, tr := range trails {
		if len(tr) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, paletteColor(palette, i)))
		for j, p := range tr {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per set Braille dot
// in its cell's palette color.
func CanvasToSVG(canvas *viz.Canvas, scale float64, palette []string) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(canvas.SubWidth())*scale, float64(canvas.SubHeight())*scale)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := "#ffffff"
			if ci := canvas.Colors[y/4][x/2]; ci != viz.NoColor {
				fill = paletteColor(palette, ci)
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
