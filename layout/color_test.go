package layout

import (
	"testing"

	"github.com/redexp/kaiserhof/records"
	. "github.com/redexp/kaiserhof/types"
)

func TestColorScaleDomain(t *testing.T) {
	list := []struct {
		Counts []float64
		Domain [2]float64
	}{
		{[]float64{10, 20}, [2]float64{1, 30}},
		{[]float64{3, 1}, [2]float64{1, 4.5}},
		{[]float64{7}, [2]float64{1, 10.5}},
	}

	for _, item := range list {
		s := NewColorScale(ModeCount, bubbles(item.Counts...), DefaultPalette)

		if !s.Gradient {
			t.Errorf("%v - expect gradient", item.Counts)
		}

		if s.Domain != item.Domain {
			t.Errorf("%v - got: %v; expect: %v", item.Counts, s.Domain, item.Domain)
		}
	}
}

func TestColorScaleGradient(t *testing.T) {
	palette := Palette{Primary: "#ff0000"}
	s := NewColorScale(ModeCount, bubbles(2), palette)

	list := []struct {
		Weight float64
		Color  string
	}{
		{1, "#000000"},
		{3, "#ff0000"},
		{2, "#800000"},
		{0, "#000000"},
		{10, "#ff0000"},
	}

	for _, item := range list {
		c := s.Color(records.Group{Weight: item.Weight})

		if c != item.Color {
			t.Errorf("%v - got: %s; expect: %s", item.Weight, c, item.Color)
		}
	}
}

func TestColorScaleEmpty(t *testing.T) {
	s := NewColorScale(ModeCount, nil, Palette{Primary: "#123456"})

	if s.Gradient {
		t.Error("empty data should not use gradient")
	}

	if c := s.Color(records.Group{Weight: 5}); c != "#123456" {
		t.Errorf("got %s; expect primary", c)
	}
}

func TestColorScaleMembers(t *testing.T) {
	palette := Palette{Man: "#0000ff", Woman: "#ff00ff"}
	s := NewColorScale(ModePersons, nil, palette)

	list := map[string]string{
		records.GroupMale:        "#0000ff",
		records.GroupFemale:      "#ff00ff",
		records.GroupUnspecified: Grey,
		"":                       Grey,
		"#00ff00":                "#00ff00",
	}

	for key, expect := range list {
		if c := s.Color(records.Group{Key: key}); c != expect {
			t.Errorf("%q - got: %s; expect: %s", key, c, expect)
		}
	}
}

func TestHoverRadius(t *testing.T) {
	list := []struct {
		R      float64
		Expect float64
	}{
		{50, 70},
		{5, 55},
		{100, 110},
		{20, 70},
		{0, 50},
	}

	for _, item := range list {
		if r := HoverRadius(item.R); r != item.Expect {
			t.Errorf("HoverRadius(%v) - got: %v; expect: %v", item.R, r, item.Expect)
		}
	}
}

func TestSplitLabel(t *testing.T) {
	list := []struct {
		Text  string
		Lines []string
	}{
		{"Kitchen: 3", []string{"Kitchen: 3"}},
		{"Hofkammer Zahlamt: 12", []string{"Hofkammer ", "Zahlamt: 12"}},
		{"Obersthofmeisteramt", []string{"Obersthofmeisteramt"}},
		{"Kaiserin Elisabeth Christine", []string{"Kaiserin ", "Elisabeth ", "Christine"}},
		{"ABC Stall", []string{"AB", "C ", "Stall"}},
		{"Österreich Ungarn", []string{"Österreich ", "Ungarn"}},
		{"", []string{""}},
	}

	for _, item := range list {
		lines := SplitLabel(item.Text)

		if len(lines) != len(item.Lines) {
			t.Errorf("%q - got: %q; expect: %q", item.Text, lines, item.Lines)
			continue
		}

		for i := range lines {
			if lines[i] != item.Lines[i] {
				t.Errorf("%q - got: %q; expect: %q", item.Text, lines, item.Lines)
				break
			}
		}
	}
}

func TestLabelLines(t *testing.T) {
	lines := LabelLines("Hofkammer Zahlamt")

	if lines[0].Y != "-0.2em" || lines[1].Y != "0.8em" {
		t.Errorf("got %v", lines)
	}

	if LabelFill(50) != Transparent || LabelFill(51) != White {
		t.Error("label must show only above radius 50")
	}
}
