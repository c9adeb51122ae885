package cellgrid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// blurSigma is the strength of the blur content filter.
const blurSigma = 2.5

// applyFilter runs one of the supported content filters over src.
// An empty filter returns src unchanged.
func applyFilter(src *image.NRGBA, filter string) (*image.NRGBA, error) {
	switch filter {
	case "":
		return src, nil
	case FilterGrayscale:
		return imaging.Grayscale(src), nil
	case FilterBlur:
		return imaging.Blur(src, blurSigma), nil
	case FilterDither:
		return dither(src), nil
	}
	return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidConfiguration, filter)
}

// dither converts an image to black and white image, where the white is fully transparent.
func dither(src *image.NRGBA) *image.NRGBA {
	var (
		bounds   = src.Bounds()
		dithered = image.NewNRGBA(bounds)
	)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if c.R > 127 && c.G > 127 && c.B > 127 {
				dithered.SetNRGBA(x, y, color.NRGBA{A: 0x00})
				continue
			}
			dithered.SetNRGBA(x, y, color.NRGBA{A: 0xff})
		}
	}

	return dithered
}
