package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// Reflect clamps b into the viewport and negates the velocity component of
// every axis that had to be clamped. Each axis is handled on its own, so a
// corner hit flips both components.
func Reflect(b *dynamo.Body, vp dynamo.Viewport) (hitX, hitY bool) {
	d := b.Diameter()

	if b.Pos.X < 0 {
		b.Pos.X = 0
		hitX = true
	} else if b.Pos.X > vp.Width-d {
		b.Pos.X = vp.Width - d
		hitX = true
	}
	if hitX {
		b.Vel.X = -b.Vel.X
	}

	if b.Pos.Y < 0 {
		b.Pos.Y = 0
		hitY = true
	} else if b.Pos.Y > vp.Height-d {
		b.Pos.Y = vp.Height - d
		hitY = true
	}
	if hitY {
		b.Vel.Y = -b.Vel.Y
	}

	return hitX, hitY
}

// Contain clamps b into the viewport after positional correction. Unlike
// Reflect it only turns a velocity component around when it still points
// out of the wall, so a body already heading back in is left alone.
func Contain(b *dynamo.Body, vp dynamo.Viewport) bool {
	d := b.Diameter()
	clamped := false

	switch {
	case b.Pos.X < 0:
		b.Pos.X = 0
		b.Vel.X = abs(b.Vel.X)
		clamped = true
	case b.Pos.X > vp.Width-d:
		b.Pos.X = vp.Width - d
		b.Vel.X = -abs(b.Vel.X)
		clamped = true
	}

	switch {
	case b.Pos.Y < 0:
		b.Pos.Y = 0
		b.Vel.Y = abs(b.Vel.Y)
		clamped = true
	case b.Pos.Y > vp.Height-d:
		b.Pos.Y = vp.Height - d
		b.Vel.Y = -abs(b.Vel.Y)
		clamped = true
	}

	return clamped
}

// InBounds reports whether b lies fully inside the viewport.
func InBounds(b *dynamo.Body, vp dynamo.Viewport) bool {
	d := b.Diameter()
	return b.Pos.X >= 0 && b.Pos.X <= vp.Width-d &&
		b.Pos.Y >= 0 && b.Pos.Y <= vp.Height-d
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
