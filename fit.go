package cellgrid

import (
	"fmt"
	"math"
)

// Fit returns the per-axis scale factor needed to resize the content
// dimension into the target dimension, according to the scale type.
//
//   - ScaleNone keeps the content as is.
//   - ScaleFit shrinks the content uniformly to fit the target, but never enlarges it.
//   - ScaleShowAll scales the content uniformly, up or down, to fit the target.
//   - ScaleFill stretches each axis independently to fill the target.
//   - ScaleEnvelop scales the content uniformly to cover the whole target.
//     The overflowing part is expected to be clipped by the renderer.
func Fit(content, target Dimension, scale CellScale) (Point, error) {
	switch scale {
	case ScaleNone:
		return NewPoint(1, 1), nil
	case ScaleFit:
		s := math.Min(target.Width/content.Width, target.Height/content.Height)
		if s < 1 {
			return NewPoint(s, s), nil
		}
		return NewPoint(1, 1), nil
	case ScaleShowAll:
		s := math.Min(target.Width/content.Width, target.Height/content.Height)
		return NewPoint(s, s), nil
	case ScaleFill:
		return NewPoint(target.Width/content.Width, target.Height/content.Height), nil
	case ScaleEnvelop:
		s := math.Max(target.Width/content.Width, target.Height/content.Height)
		return NewPoint(s, s), nil
	default:
		return Point{}, fmt.Errorf("%w: unknown scale type: %v", ErrInvalidConfiguration, scale)
	}
}

// Align returns the top-left position where the dimension has to be placed
// inside rect in order to be aligned according to the align type.
// AlignNone behaves like AlignLeftTop.
func Align(dim Dimension, rect Rect, align CellAlign) (Point, error) {
	var (
		x, y = rect.X, rect.Y
		dw   = rect.Width - dim.Width
		dh   = rect.Height - dim.Height
		pos  = NewPoint(x, y)
	)

	switch align {
	case AlignCenter:
		pos.Set(x+dw/2, y+dh/2)
	case AlignCenterTop:
		pos.Set(x+dw/2, y)
	case AlignCenterBottom:
		pos.Set(x+dw/2, y+dh)
	case AlignLeftCenter:
		pos.Set(x, y+dh/2)
	case AlignLeftTop, AlignNone:
	case AlignLeftBottom:
		pos.Set(x, y+dh)
	case AlignRightCenter:
		pos.Set(x+dw, y+dh/2)
	case AlignRightTop:
		pos.Set(x+dw, y)
	case AlignRightBottom:
		pos.Set(x+dw, y+dh)
	default:
		return Point{}, fmt.Errorf("%w: unknown align type: %v", ErrInvalidConfiguration, align)
	}
	return pos, nil
}
