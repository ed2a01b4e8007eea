package layout

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/redexp/kaiserhof/records"
	. "github.com/redexp/kaiserhof/types"
)

const (
	Black       = "#000000"
	White       = "#ffffff"
	Grey        = "#808080"
	Transparent = "transparent"
)

type Palette struct {
	Primary   string `json:"primary" mapstructure:"primary"`
	Secondary string `json:"secondary" mapstructure:"secondary"`
	Man       string `json:"man" mapstructure:"man"`
	Woman     string `json:"woman" mapstructure:"woman"`
}

var DefaultPalette = Palette{
	Primary:   "#3c6e9f",
	Secondary: "#e8a33d",
	Man:       "#5b8fd6",
	Woman:     "#d66b8f",
}

var colorNames = map[string]string{
	"black": Black,
	"white": White,
	"grey":  Grey,
	"gray":  Grey,
}

func ParseColor(value string) (colorful.Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	if hex, ok := colorNames[value]; ok {
		value = hex
	}

	c, err := colorful.Hex(value)

	if err != nil {
		return colorful.Color{}, false
	}

	return c, true
}

// NormalizeColor returns the color as #rrggbb, or def when value is not a color.
func NormalizeColor(value string, def string) string {
	c, ok := ParseColor(value)

	if !ok {
		return def
	}

	return c.Hex()
}

// ColorScale maps the group of a bubble to its fill.
type ColorScale struct {
	Mode     Mode
	Gradient bool
	Domain   [2]float64

	from    colorful.Color
	to      colorful.Color
	palette Palette
}

func NewColorScale(mode Mode, nodes []*records.BubbleNode, palette Palette) *ColorScale {
	s := &ColorScale{
		Mode:    mode,
		palette: palette,
	}

	if mode != ModeCount || len(nodes) == 0 {
		return s
	}

	maxVal := nodes[0].Group.Weight

	for _, node := range nodes[1:] {
		maxVal = max(maxVal, node.Group.Weight)
	}

	s.Gradient = true
	s.Domain = [2]float64{1, maxVal * 1.5}
	s.from, _ = ParseColor(Black)
	s.to, _ = ParseColor(palette.Primary)

	return s
}

func (s *ColorScale) Color(g records.Group) string {
	if s.Mode == ModeCount {
		if !s.Gradient {
			return NormalizeColor(s.palette.Primary, Black)
		}

		return s.from.BlendRgb(s.to, s.normalize(g.Weight)).Clamped().Hex()
	}

	switch g.Key {
	case records.GroupMale:
		return NormalizeColor(s.palette.Man, Grey)
	case records.GroupFemale:
		return NormalizeColor(s.palette.Woman, Grey)
	}

	return NormalizeColor(g.Key, Grey)
}

func (s *ColorScale) Highlight() string {
	return NormalizeColor(s.palette.Secondary, White)
}

func (s *ColorScale) normalize(v float64) float64 {
	lo, hi := s.Domain[0], s.Domain[1]

	if hi == lo {
		return 0.5
	}

	return (v - lo) / (hi - lo)
}
