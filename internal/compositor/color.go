package compositor

import "image/color"

// Badge colors by rating tier.
var (
	ColorGood = color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff} // #22c55e
	ColorOK   = color.NRGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff} // #eab308
	ColorWarn = color.NRGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff} // #f97316
	ColorBad  = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff} // #ef4444
)

// RatingColor maps a rating to its badge color. A value sitting on a tier
// boundary belongs to the higher tier.
func RatingColor(r float64) color.NRGBA {
	switch {
	case r >= 8:
		return ColorGood
	case r >= 6:
		return ColorOK
	case r >= 4:
		return ColorWarn
	default:
		return ColorBad
	}
}
