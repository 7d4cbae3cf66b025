package compositor

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageCodec decodes source posters and encodes the composed result.
type ImageCodec interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image, quality int) error
}

// imagingCodec reads JPEG, PNG, GIF, BMP, TIFF and WebP, honouring EXIF
// orientation, and writes baseline JPEG.
type imagingCodec struct{}

func (imagingCodec) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

func (imagingCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}
