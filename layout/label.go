package layout

import (
	"fmt"
	"math"
	"unicode"
)

// HoverRadius enlarges r by min(1000/r, 50): small circles grow relatively more.
func HoverRadius(r float64) float64 {
	if r <= 0 {
		return ss.HoverMaxBump
	}

	return math.Min(ss.HoverScale/r, ss.HoverMaxBump) + r
}

// LabelVisible is true when a label fits into a circle of radius r.
func LabelVisible(r float64) bool {
	return r > ss.LabelMinRadius
}

func LabelFill(r float64) string {
	if LabelVisible(r) {
		return White
	}

	return Transparent
}

type LabelLine struct {
	Text string `json:"text"`
	X    string `json:"x"`
	Y    string `json:"y"`
}

// SplitLabel breaks text before every upper case letter that starts a word
// part, "Hofkammer Zahlamt" gives "Hofkammer ", "Zahlamt".
func SplitLabel(text string) []string {
	runes := []rune(text)
	list := make([]string, 0, 1)
	start := 0

	for i := 1; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			continue
		}

		if i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) {
			list = append(list, string(runes[start:i]))
			start = i
		}
	}

	return append(list, string(runes[start:]))
}

// LabelLines positions the lines of text around the circle center.
func LabelLines(text string) []LabelLine {
	parts := SplitLabel(text)
	lines := make([]LabelLine, len(parts))
	n := float64(len(parts))

	for i, part := range parts {
		lines[i] = LabelLine{
			Text: part,
			X:    "0",
			Y:    fmt.Sprintf("%gem", math.Round((float64(i)-n/2+0.8)*100)/100),
		}
	}

	return lines
}
