package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector in viewport units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// VisualID tells a renderer which sprite to draw. The simulation never reads it.
type VisualID int

// Body is one circular particle. Pos is the upper-left corner of its
// bounding square, so the body covers [Pos, Pos+Diameter] on both axes.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Visual VisualID
}

func (b *Body) Diameter() float64 { return 2 * b.Radius }

func (b *Body) Center() Vec2 {
	return Vec2{b.Pos.X + b.Radius, b.Pos.Y + b.Radius}
}

// View returns the read-only part of the body a renderer needs.
func (b *Body) View() BodyView {
	return BodyView{Pos: b.Pos, Radius: b.Radius, Visual: b.Visual}
}

// BodyView is a snapshot element. Its index matches the body's index for
// the whole lifetime of a simulator.
type BodyView struct {
	Pos    Vec2
	Radius float64
	Visual VisualID
}

func (v BodyView) Center() Vec2 {
	return Vec2{v.Pos.X + v.Radius, v.Pos.Y + v.Radius}
}

// Viewport is the region [0, Width] x [0, Height] bodies must stay in.
type Viewport struct {
	Width  float64
	Height float64
}

func (vp Viewport) Validate() error {
	for _, v := range []float64{vp.Width, vp.Height} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, vp.Width, vp.Height)
		}
	}
	return nil
}

// Fits reports whether a body of the given radius can lie fully inside.
func (vp Viewport) Fits(radius float64) bool {
	return 2*radius <= vp.Width && 2*radius <= vp.Height
}

// Frame is what metrics and observers see after a completed step.
// Bodies is a copy; mutating it has no effect on the simulation.
type Frame struct {
	Tick     int
	Viewport Viewport
	Bodies   []Body
	WallHits int
	Contacts int
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

// Config is the construction record for a body set.
type Config struct {
	BodyCount int
	RadiusMin float64
	RadiusMax float64
	Viewport  Viewport
	SpeedMin  float64
	SpeedMax  float64
	Visuals   int
	Seed      int64
}

const (
	DefaultBodyCount = 15
	DefaultRadiusMin = 30.0
	DefaultRadiusMax = 60.0
	DefaultWidth     = 1280.0
	DefaultHeight    = 720.0
	DefaultSpeedMin  = 0.5
	DefaultSpeedMax  = 2.0
	DefaultVisuals   = 10
)

func DefaultConfig() Config {
	return Config{
		BodyCount: DefaultBodyCount,
		RadiusMin: DefaultRadiusMin,
		RadiusMax: DefaultRadiusMax,
		Viewport:  Viewport{Width: DefaultWidth, Height: DefaultHeight},
		SpeedMin:  DefaultSpeedMin,
		SpeedMax:  DefaultSpeedMax,
		Visuals:   DefaultVisuals,
	}
}

// Validate rejects parameters that would make per-tick behaviour undefined.
func (c Config) Validate() error {
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if c.BodyCount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBodyCount, c.BodyCount)
	}
	if !(c.RadiusMin > 0) || !(c.RadiusMax >= c.RadiusMin) || math.IsInf(c.RadiusMax, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRadius, c.RadiusMin, c.RadiusMax)
	}
	if !c.Viewport.Fits(c.RadiusMax) {
		return fmt.Errorf("%w: diameter %g in %gx%g", ErrBodyTooLarge, 2*c.RadiusMax, c.Viewport.Width, c.Viewport.Height)
	}
	if !(c.SpeedMin > 0) || !(c.SpeedMax >= c.SpeedMin) || math.IsInf(c.SpeedMax, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidSpeed, c.SpeedMin, c.SpeedMax)
	}
	if c.Visuals < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidVisuals, c.Visuals)
	}
	return nil
}

// Sample is the per-tick summary kept by headless runs.
type Sample struct {
	Tick          int     `json:"tick"`
	KineticEnergy float64 `json:"kinetic_energy"`
	Momentum      float64 `json:"momentum"`
	Contacts      int     `json:"contacts"`
	WallHits      int     `json:"wall_hits"`
	MaxOverlap    float64 `json:"max_overlap"`
}
