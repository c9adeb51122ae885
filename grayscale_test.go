package cellgrid

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	imgWidth  = 10
	imgHeight = 10
)

func solidImage(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	for x := 0; x < imgWidth; x++ {
		for y := 0; y < imgHeight; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGrayscale(t *testing.T) {
	img, err := applyFilter(solidImage(color.NRGBA{R: 233, G: 30, B: 99, A: 128}), FilterGrayscale)
	require.NoError(t, err)

	for x := 0; x < imgWidth; x++ {
		for y := 0; y < imgHeight; y++ {
			c := img.NRGBAAt(x, y)
			if c.R != c.G || c.R != c.B || c.G != c.B {
				t.Errorf("R, G, B value expected to be equal. Got %v, %v, %v", c.R, c.G, c.B)
			}
			assert.Equal(t, uint8(128), c.A)
			assert.InDelta(t, 99, int(c.R), 1)
		}
	}
}

func TestDither(t *testing.T) {
	assert := assert.New(t)

	light := dither(solidImage(color.NRGBA{R: 200, G: 200, B: 200, A: 255}))
	assert.Equal(uint8(0), light.NRGBAAt(5, 5).A)

	dark := dither(solidImage(color.NRGBA{R: 200, G: 20, B: 200, A: 255}))
	assert.Equal(color.NRGBA{A: 255}, dark.NRGBAAt(5, 5))
}

func TestApplyFilter(t *testing.T) {
	src := solidImage(color.NRGBA{R: 33, G: 150, B: 243, A: 255})

	for _, filter := range []string{"", FilterGrayscale, FilterBlur, FilterDither} {
		t.Run(filter, func(t *testing.T) {
			img, err := applyFilter(src, filter)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}

	_, err := applyFilter(src, "sepia")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
