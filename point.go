package cellgrid

// Point is a 2-D point. It is mainly used as the result of the scale and
// alignment math, where X and Y are either scale factors or a position.
type Point struct {
	X float64
	Y float64
}

// NewPoint creates a new Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Set updates the point in place and returns it.
func (p *Point) Set(x, y float64) *Point {
	p.X, p.Y = x, y
	return p
}
