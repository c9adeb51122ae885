package cellgrid

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/esimov/cellgrid/utils"
)

// debugPalette holds the outline colors used for cells without an explicit
// debug color. The color is picked by the depth of the cell.
var debugPalette = []uint32{0xe91e63, 0x2196f3, 0x4caf50, 0xff9800, 0x9c27b0}

// fillAlpha is the opacity of a filled debug rectangle.
const fillAlpha = 0x40

// debugStyle returns the color and the fill mode of the debug rectangle of a
// cell. The boolean is false when the cell should not be outlined.
func debugStyle[T any](cell *Cell[T], depth int, force bool) (color.NRGBA, bool, bool) {
	cfg := cell.Debug()
	if cfg == nil && !force {
		return color.NRGBA{}, false, false
	}

	col := utils.Uint32ToRGBA(debugPalette[depth%len(debugPalette)])
	fill := false
	if cfg != nil {
		if cfg.Color != 0 {
			col = utils.Uint32ToRGBA(cfg.Color)
		}
		fill = cfg.Fill
	}
	if fill {
		col.A = fillAlpha
	}
	return col, fill, true
}

// drawRect outlines r on dst, or fills it when fill is set.
func drawRect(dst *image.NRGBA, r image.Rectangle, col color.NRGBA, fill bool) {
	src := &image.Uniform{C: col}
	if fill {
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
		return
	}
	if r.Empty() {
		return
	}

	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}
