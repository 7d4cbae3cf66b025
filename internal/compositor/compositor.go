package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

// DefaultMaxSourcePixels bounds the decoded size of a source poster.
const DefaultMaxSourcePixels = 40_000_000

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Compositor renders rated posters for a single layout. It holds no
// mutable state and is safe for concurrent use.
type Compositor struct {
	layout    Layout
	codec     ImageCodec
	maxPixels int64
}

// compile-time check: *Compositor must satisfy port.Compositor
var _ port.Compositor = (*Compositor)(nil)

func New(layout Layout) *Compositor {
	return NewWithCodec(layout, imagingCodec{})
}

func NewWithCodec(layout Layout, codec ImageCodec) *Compositor {
	if codec == nil {
		codec = imagingCodec{}
	}
	return &Compositor{layout: layout, codec: codec, maxPixels: DefaultMaxSourcePixels}
}

// WithMaxSourcePixels returns a copy rejecting sources larger than n pixels.
// n <= 0 keeps DefaultMaxSourcePixels.
func (c *Compositor) WithMaxSourcePixels(n int64) *Compositor {
	cp := *c
	if n <= 0 {
		n = DefaultMaxSourcePixels
	}
	cp.maxPixels = n
	return &cp
}

func (c *Compositor) Layout() Layout {
	return c.layout
}

// Compose scales src onto a black 500x750 canvas and, when the rating is
// set, draws the rating badge. The result is a JPEG.
func (c *Compositor) Compose(src []byte, rating model.Rating) ([]byte, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty source image", poster.ErrComposition)
	}
	if err := c.checkSourceSize(src); err != nil {
		return nil, err
	}
	img, err := c.codec.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: decode source: %v", poster.ErrComposition, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: source image has no pixels", poster.ErrComposition)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(canvas, image.Rect(0, 0, CanvasWidth, c.layout.PosterHeight), img, img.Bounds(), xdraw.Over, nil)

	if rating.Rated {
		if err := c.drawBadge(canvas, rating); err != nil {
			return nil, fmt.Errorf("%w: draw badge: %v", poster.ErrComposition, err)
		}
	}

	var buf bytes.Buffer
	if err := c.codec.Encode(&buf, canvas, c.layout.Quality); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", poster.ErrComposition, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: encoder produced no data", poster.ErrComposition)
	}
	return buf.Bytes(), nil
}

// checkSourceSize reads only the image header, so oversized sources are
// rejected before any pixel buffer is allocated.
func (c *Compositor) checkSourceSize(src []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("%w: decode source header: %v", poster.ErrComposition, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: source image has no pixels", poster.ErrComposition)
	}
	if int64(cfg.Width)*int64(cfg.Height) > c.maxPixels {
		return fmt.Errorf("%w: source too large (%dx%d, limit %d pixels)", poster.ErrComposition, cfg.Width, cfg.Height, c.maxPixels)
	}
	return nil
}

func (c *Compositor) drawBadge(dst *image.RGBA, rating model.Rating) error {
	l := c.layout
	text := rating.Format()
	// the color follows the number printed on the badge
	shown, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}

	if l.ScrimHeight > 0 {
		drawScrim(dst, l.ScrimHeight, l.ScrimAlpha)
	}

	if l.BadgeShadow.enabled() {
		drawShadow(dst, l.Badge, l.BadgeShadow, func(layer draw.Image, shift image.Point) {
			fillRoundedRect(layer, l.Badge.Add(shift), l.Radius, color.Black)
		})
	}
	fillRoundedRect(dst, l.Badge, l.Radius, RatingColor(shown))

	f, err := boldFont()
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    l.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	lbl := layoutLabel(face, text, l.Star, l.Badge)
	if lbl.width <= 0 {
		return errors.New("label has no width")
	}
	if l.TextShadow.enabled() {
		drawShadow(dst, lbl.bounds, l.TextShadow, func(layer draw.Image, shift image.Point) {
			lbl.draw(layer, shift, color.Black)
		})
	}
	lbl.draw(dst, image.Point{}, color.White)
	return nil
}

// drawScrim darkens the top rows with a vertical gradient from alpha to 0.
func drawScrim(dst *image.RGBA, height int, alpha float64) {
	w := dst.Bounds().Dx()
	for y := 0; y < height && y < dst.Bounds().Dy(); y++ {
		a := alpha * (1 - (float64(y)+0.5)/float64(height))
		c := color.NRGBA{A: uint8(math.Round(a * 255))}
		draw.Draw(dst, image.Rect(0, y, w, y+1), image.NewUniform(c), image.Point{}, draw.Over)
	}
}

// drawShadow paints a shape on a transparent layer, blurs it and blends it
// under whatever is drawn next. paint receives the translation from dst
// coordinates into the layer, offset included; it must draw opaque black.
func drawShadow(dst *image.RGBA, area image.Rectangle, s Shadow, paint func(layer draw.Image, shift image.Point)) {
	// a canvas blur of b spreads roughly 1.5*b pixels
	pad := int(math.Ceil(1.5*s.Blur)) + 2
	region := area.Add(s.Offset).Inset(-pad)

	layer := image.NewNRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	paint(layer, s.Offset.Sub(region.Min))
	blurred := imaging.Blur(layer, s.Blur/2)

	tinted := image.NewNRGBA(blurred.Bounds())
	for i := 0; i < len(blurred.Pix); i += 4 {
		a := uint32(blurred.Pix[i+3]) * uint32(s.Color.A) / 0xff
		tinted.Pix[i+0] = s.Color.R
		tinted.Pix[i+1] = s.Color.G
		tinted.Pix[i+2] = s.Color.B
		tinted.Pix[i+3] = uint8(a)
	}
	draw.Draw(dst, region, tinted, image.Point{}, draw.Over)
}

func fillRoundedRect(dst draw.Image, r image.Rectangle, radius float32, c color.Color) {
	w, h := float32(r.Dx()), float32(r.Dy())
	rad := min(radius, w/2, h/2)
	// cubic approximation of a quarter circle
	k := rad * 0.5523
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(rad, 0)
	z.LineTo(w-rad, 0)
	z.CubeTo(w-rad+k, 0, w, rad-k, w, rad)
	z.LineTo(w, h-rad)
	z.CubeTo(w, h-rad+k, w-rad+k, h, w-rad, h)
	z.LineTo(rad, h)
	z.CubeTo(rad-k, h, 0, h-rad+k, 0, h-rad)
	z.LineTo(0, rad)
	z.CubeTo(0, rad-k, rad-k, 0, rad, 0)
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

func fillStar(dst draw.Image, cx, cy, r float64, c color.Color) {
	box := image.Rect(
		int(math.Floor(cx-r))-1, int(math.Floor(cy-r))-1,
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	)
	ox, oy := cx-float64(box.Min.X), cy-float64(box.Min.Y)
	inner := r * 0.382

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	for i := 0; i < 10; i++ {
		rad := r
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x := float32(ox + rad*math.Cos(a))
		y := float32(oy + rad*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(dst, box, image.NewUniform(c), image.Point{})
}

// label is the rating text, optionally followed by a star, centered in a box.
type label struct {
	face   font.Face
	text   string
	dot    fixed.Point26_6
	width  float64
	bounds image.Rectangle

	star         bool
	starX, starY float64
	starR        float64
}

func layoutLabel(face font.Face, text string, star bool, box image.Rectangle) label {
	m := face.Metrics()
	capH := m.CapHeight
	if capH <= 0 {
		capH = m.Ascent * 7 / 10
	}
	capPx := float64(capH) / 64
	textW := float64(font.MeasureString(face, text)) / 64

	var starR, gap float64
	if star {
		starR = capPx * 0.6
		gap = capPx * 0.15
	}
	width := textW + gap + 2*starR

	cx := float64(box.Min.X+box.Max.X) / 2
	cy := float64(box.Min.Y+box.Max.Y) / 2
	left := cx - width/2
	baseline := cy + capPx/2

	return label{
		face:  face,
		text:  text,
		dot:   fixed.Point26_6{X: fixed.Int26_6(math.Round(left * 64)), Y: fixed.Int26_6(math.Round(baseline * 64))},
		width: width,
		bounds: image.Rect(
			int(math.Floor(left)), int(math.Floor(baseline-float64(m.Ascent)/64)),
			int(math.Ceil(left+width)), int(math.Ceil(baseline+float64(m.Descent)/64)),
		),
		star:  star,
		starX: left + textW + gap + starR,
		starY: cy,
		starR: starR,
	}
}

func (l label) draw(dst draw.Image, shift image.Point, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: l.face,
		Dot:  l.dot.Add(fixed.P(shift.X, shift.Y)),
	}
	d.DrawString(l.text)
	if l.star {
		fillStar(dst, l.starX+float64(shift.X), l.starY+float64(shift.Y), l.starR, c)
	}
}
