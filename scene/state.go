package scene

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/redexp/kaiserhof/layout"
)

// State is everything the client paints for one bubble.
type State struct {
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	R           float64            `json:"r"`
	Fill        string             `json:"fill"`
	FillOpacity float64            `json:"fillOpacity"`
	TextFill    string             `json:"textFill"`
	Lines       []layout.LabelLine `json:"lines"`
	Title       string             `json:"title"`
}

func (s State) Equal(o State) bool {
	return s.X == o.X &&
		s.Y == o.Y &&
		s.R == o.R &&
		s.Fill == o.Fill &&
		s.FillOpacity == o.FillOpacity &&
		s.TextFill == o.TextFill &&
		s.Title == o.Title &&
		slices.Equal(s.Lines, o.Lines)
}

// Collapsed is the state an element grows from or shrinks to.
func (s State) Collapsed() State {
	s.R = 0
	s.TextFill = layout.Transparent

	return s
}

type Transition struct {
	Duration time.Duration
	Ease     Ease
}

var (
	Instant = Transition{Ease: EaseLinear}
	Layout  = Transition{Duration: 750 * time.Millisecond, Ease: EaseCubicInOut}
	Bounce  = Transition{Duration: 500 * time.Millisecond, Ease: EaseBounce}
)

func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration int64 `json:"duration"`
		Ease     Ease  `json:"ease"`
	}{
		Duration: t.Duration.Milliseconds(),
		Ease:     t.Ease,
	})
}

// Sample returns the state at normalized time t between from and to.
func (t Transition) Sample(from, to State, at float64) State {
	if t.Duration <= 0 || at >= 1 {
		return to
	}

	p := t.Ease.At(at)
	s := to

	s.X = lerp(from.X, to.X, p)
	s.Y = lerp(from.Y, to.Y, p)
	s.R = lerp(from.R, to.R, p)
	s.FillOpacity = lerp(from.FillOpacity, to.FillOpacity, p)
	s.Fill = blend(from.Fill, to.Fill, p)
	s.TextFill = blend(from.TextFill, to.TextFill, p)

	return s
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// blend mixes two colors in RGB. A value that is not a color (transparent)
// switches at the middle of the transition.
func blend(from, to string, p float64) string {
	if from == to {
		return to
	}

	a, okA := layout.ParseColor(from)
	b, okB := layout.ParseColor(to)

	if !okA || !okB {
		if p < 0.5 {
			return from
		}

		return to
	}

	return a.BlendRgb(b, p).Clamped().Hex()
}
