package compositor

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

const (
	CanvasWidth  = 500
	CanvasHeight = 750
)

// Shadow describes a blurred drop shadow.
type Shadow struct {
	Color  color.NRGBA
	Blur   float64
	Offset image.Point
}

func (s Shadow) enabled() bool {
	return s.Color.A > 0
}

// Layout holds every placement decision of a rated poster. Both layouts
// are rendered by the same code path.
type Layout struct {
	Name string

	// PosterHeight is the height the source is scaled into, from the top.
	PosterHeight int
	// ScrimHeight is the height of the dark gradient drawn over the top
	// of the poster behind the badge, zero to disable.
	ScrimHeight int
	ScrimAlpha  float64

	Badge       image.Rectangle
	Radius      float32
	BadgeShadow Shadow

	FontSize   float64
	TextShadow Shadow
	Star       bool

	Quality int
}

// LayoutSplit keeps the whole poster visible and puts the badge on a black
// band under it.
var LayoutSplit = Layout{
	Name:         "split",
	PosterHeight: 690,
	Badge:        image.Rect(130, 695, 370, 745),
	Radius:       10,
	BadgeShadow: Shadow{
		Color:  color.NRGBA{A: 128},
		Blur:   15,
		Offset: image.Pt(0, 3),
	},
	FontSize: 44,
	TextShadow: Shadow{
		Color:  color.NRGBA{A: 77},
		Blur:   8,
		Offset: image.Pt(2, 2),
	},
	Star:    true,
	Quality: 95,
}

// LayoutOverlay draws a small badge in the top-right corner of a full
// height poster.
var LayoutOverlay = Layout{
	Name:         "overlay",
	PosterHeight: CanvasHeight,
	ScrimHeight:  80,
	ScrimAlpha:   0.7,
	Badge:        image.Rect(420, 20, 480, 50),
	Radius:       5,
	FontSize:     20,
	TextShadow: Shadow{
		Color:  color.NRGBA{A: 128},
		Blur:   10,
		Offset: image.Pt(2, 2),
	},
	Quality: 90,
}

// ParseLayout resolves a layout by name, "" meaning split.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", LayoutSplit.Name:
		return LayoutSplit, nil
	case LayoutOverlay.Name:
		return LayoutOverlay, nil
	default:
		return Layout{}, fmt.Errorf("unknown poster layout %q", name)
	}
}
