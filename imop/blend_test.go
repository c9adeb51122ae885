package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Empty(op.Get())

	op.Set("blend_mode_not_supported")
	assert.Empty(op.Get())

	op.Set(Darken)
	assert.Equal(Darken, op.Get())
	op.Set(Lighten)
	assert.Equal(Lighten, op.Get())
}

func TestBlend_Modes(t *testing.T) {
	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	tests := map[string][]uint8{
		Darken:   {214, 20, 17, 255},
		Lighten:  {250, 121, 65, 255},
		Multiply: {210, 9, 4, 255},
		Screen:   {254, 132, 78, 255},
	}

	rect := image.Rect(0, 0, 1, 1)
	for mode, expected := range tests {
		t.Run(mode, func(t *testing.T) {
			source := image.NewNRGBA(rect)
			backdrop := image.NewNRGBA(rect)
			draw.Draw(source, rect, &image.Uniform{pinkFront}, image.Point{}, draw.Src)
			draw.Draw(backdrop, rect, &image.Uniform{orangeBack}, image.Point{}, draw.Src)

			blend := NewBlend()
			blend.Set(mode)
			InitOp().Draw(backdrop, source, image.Point{}, rect, blend)

			assert.EqualValues(t, expected, backdrop.Pix)
		})
	}
}
