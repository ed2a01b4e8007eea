package scene

import (
	"github.com/redexp/kaiserhof/i18n"
	"github.com/redexp/kaiserhof/layout"
)

var ss = struct {
	FillOpacity      float64
	HoverFillOpacity float64
}{
	FillOpacity:      0.7,
	HoverFillOpacity: 0.8,
}

// Style binds a packed node to its painted state from the data, the
// current selection and the hover flag of the element.
type Style struct {
	Scale    *layout.ColorScale
	Selected string
}

func (s Style) Bind(p *layout.PackedNode, hover bool) State {
	state := State{
		X:           p.X,
		Y:           p.Y,
		R:           p.R,
		Fill:        s.fill(p),
		FillOpacity: ss.FillOpacity,
		TextFill:    layout.LabelFill(p.R),
		Lines:       layout.LabelLines(p.Node.Name),
		Title:       Tooltip(p),
	}

	if hover {
		state.R = layout.HoverRadius(p.R)
		state.Fill = s.highlight()
		state.FillOpacity = ss.HoverFillOpacity
		state.TextFill = layout.LabelFill(state.R)
	}

	return state
}

func (s Style) fill(p *layout.PackedNode) string {
	if s.Selected != "" && p.Key() == s.Selected {
		return s.highlight()
	}

	if s.Scale == nil {
		return layout.Black
	}

	return s.Scale.Color(p.Node.Group)
}

func (s Style) highlight() string {
	if s.Scale == nil {
		return layout.White
	}

	return s.Scale.Highlight()
}

func Tooltip(p *layout.PackedNode) string {
	return p.Node.Title + "\n" + i18n.FormatInt(int(p.Value))
}
