package layout

import "math"

type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Pos) Distance(target Pos) float64 {
	return math.Hypot(target.X-p.X, target.Y-p.Y)
}

type Circle struct {
	Pos

	R float64 `json:"r"`
}

// Intersects is true when the circles overlap by more than a rounding error.
func (a Circle) Intersects(b Circle) bool {
	dr := a.R + b.R - 1e-6
	dx := b.X - a.X
	dy := b.Y - a.Y

	return dr > 0 && dr*dr > dx*dx+dy*dy
}

type Viewport struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

func (v Viewport) Min() float64 {
	return math.Min(v.Width, v.Height)
}

func (v Viewport) Center() Pos {
	return Pos{
		X: v.Width / 2,
		Y: v.Height / 2,
	}
}
