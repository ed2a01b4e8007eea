package scene

import "math"

type Ease string

const (
	EaseLinear     Ease = "linear"
	EaseCubicInOut Ease = "cubic-in-out"
	EaseBounce     Ease = "bounce"
)

// At maps the normalized time t in [0, 1] through the curve.
func (e Ease) At(t float64) float64 {
	t = math.Max(0, math.Min(1, t))

	switch e {
	case EaseCubicInOut:
		return cubicInOut(t)
	case EaseBounce:
		return bounceOut(t)
	}

	return t
}

func cubicInOut(t float64) float64 {
	t *= 2

	if t <= 1 {
		return t * t * t / 2
	}

	t -= 2

	return (t*t*t + 2) / 2
}

const (
	b1 = 4.0 / 11
	b2 = 6.0 / 11
	b3 = 8.0 / 11
	b4 = 3.0 / 4
	b5 = 9.0 / 11
	b6 = 10.0 / 11
	b7 = 15.0 / 16
	b8 = 21.0 / 22
	b9 = 63.0 / 64
	b0 = 1 / b1 / b1
)

func bounceOut(t float64) float64 {
	switch {
	case t < b1:
		return b0 * t * t
	case t < b3:
		t -= b2
		return b0*t*t + b4
	case t < b6:
		t -= b5
		return b0*t*t + b7
	}

	t -= b8

	return b0*t*t + b9
}
