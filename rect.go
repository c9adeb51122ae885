package cellgrid

import (
	"image"
	"math"
)

// Rect represents a rectangle as origin plus size.
// Depending on the context the values are either fractions of a parent
// rectangle or absolute pixels. Negative sizes are legal and are never
// canonicalized.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Dimension is the size of a drawable content or of a target area.
type Dimension struct {
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Size returns the rectangle dimension.
func (r Rect) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height}
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Image converts the rectangle to an integer image.Rectangle.
// The edges are rounded independently, so adjacent cells stay adjacent.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.Right())),
		int(math.Round(r.Bottom())),
	)
}

// DimensionOf returns the dimension of an image rectangle.
func DimensionOf(r image.Rectangle) Dimension {
	return Dimension{Width: float64(r.Dx()), Height: float64(r.Dy())}
}
