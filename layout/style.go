package layout

var ss = Style{
	Padding:        3,
	Border:         1,
	LabelMinRadius: 50,
	HoverScale:     1000,
	HoverMaxBump:   50,
}

var DefaultViewport = Viewport{
	Width:  1000,
	Height: 1000,
}

type Style struct {
	Padding        float64
	Border         float64
	LabelMinRadius float64
	HoverScale     float64
	HoverMaxBump   float64
}
