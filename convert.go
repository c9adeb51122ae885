package cellgrid

// NumberToRect converts a scalar inset into the symmetric fractional
// rectangle (v, v, 1-2v, 1-2v).
func NumberToRect(v float64) Rect {
	return Rect{X: v, Y: v, Width: 1 - 2*v, Height: 1 - 2*v}
}

// FillRect completes a partial rectangle: an omitted origin defaults to 0,
// an omitted size fills the remaining space from the origin (1 - x, 1 - y).
func FillRect(spec RectSpec) Rect {
	var r Rect
	if spec.X != nil {
		r.X = *spec.X
	}
	if spec.Y != nil {
		r.Y = *spec.Y
	}
	r.Width = 1 - r.X
	if spec.Width != nil {
		r.Width = *spec.Width
	}
	r.Height = 1 - r.Y
	if spec.Height != nil {
		r.Height = *spec.Height
	}
	return r
}

// ToRect normalizes the padding spec into a fractional rectangle.
// A nil spec is a zero inset, i.e. the full area.
func (p *PaddingSpec) ToRect() Rect {
	switch {
	case p == nil:
		return NumberToRect(0)
	case p.Rect != nil:
		return FillRect(*p.Rect)
	default:
		return NumberToRect(p.Value)
	}
}

// ConvertToRect maps a fractional spec into the coordinate space of bounds.
func ConvertToRect(spec *PaddingSpec, bounds Rect) Rect {
	return scaleRect(spec.ToRect(), bounds)
}

// scaleRect maps the fractional rectangle fr into bounds.
func scaleRect(fr, bounds Rect) Rect {
	return Rect{
		X:      bounds.X + fr.X*bounds.Width,
		Y:      bounds.Y + fr.Y*bounds.Height,
		Width:  bounds.Width * fr.Width,
		Height: bounds.Height * fr.Height,
	}
}
