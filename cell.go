package cellgrid

import (
	"github.com/esimov/cellgrid/utils"
)

// minSize is the size of a cell whose bounds are not known yet.
// It is kept above zero so the scale math of the descendants never divides by zero.
const minSize = 1e-6

// CellConfig is the declarative, user authored description of a cell and of
// its descendants.
type CellConfig struct {
	Name string `yaml:"name" json:"name" toml:"name"`

	// Bounds of the cell. On the root they are absolute pixels, on the
	// descendants they are fractions of the parent area. Omitted position
	// fields trigger the flow placement, omitted size fields fill the
	// remaining space of the parent.
	Bounds *RectSpec `yaml:"bounds,omitempty" json:"bounds,omitempty" toml:"bounds,omitempty"`

	// BoundsFunc is consulted only on the root cell. When set it wins over
	// Bounds and is invoked exactly once, at construction time.
	BoundsFunc func() Rect `yaml:"-" json:"-" toml:"-"`

	Scale   CellScale    `yaml:"scale,omitempty" json:"scale,omitempty" toml:"scale,omitempty"`
	Align   CellAlign    `yaml:"align,omitempty" json:"align,omitempty" toml:"align,omitempty"`
	Padding *PaddingSpec `yaml:"padding,omitempty" json:"padding,omitempty" toml:"padding,omitempty"`
	Offset  *OffsetSpec  `yaml:"offset,omitempty" json:"offset,omitempty" toml:"offset,omitempty"`
	Cells   []CellConfig `yaml:"cells,omitempty" json:"cells,omitempty" toml:"cells,omitempty"`
	Debug   *DebugConfig `yaml:"debug,omitempty" json:"debug,omitempty" toml:"debug,omitempty"`
}

// Clone returns a deep copy of the config tree.
func (cfg CellConfig) Clone() CellConfig {
	c := cfg
	c.Bounds = cfg.Bounds.Clone()
	c.Padding = cfg.Padding.Clone()
	c.Offset = cfg.Offset.Clone()
	if cfg.Debug != nil {
		d := *cfg.Debug
		c.Debug = &d
	}
	if cfg.Cells != nil {
		c.Cells = make([]CellConfig, len(cfg.Cells))
		for i, child := range cfg.Cells {
			c.Cells[i] = child.Clone()
		}
	}
	return c
}

// ContentConfig lets a single content deviate from the defaults of the cell
// it belongs to. Every field is optional.
type ContentConfig struct {
	Scale   CellScale    `yaml:"scale,omitempty" json:"scale,omitempty" toml:"scale,omitempty"`
	Align   CellAlign    `yaml:"align,omitempty" json:"align,omitempty" toml:"align,omitempty"`
	Padding *PaddingSpec `yaml:"padding,omitempty" json:"padding,omitempty" toml:"padding,omitempty"`
	Offset  *OffsetSpec  `yaml:"offset,omitempty" json:"offset,omitempty" toml:"offset,omitempty"`
}

// MergedConfig is the effective placement of a content inside a cell.
// Area already includes Offset.
type MergedConfig struct {
	Align  CellAlign
	Area   Rect
	Offset Point
	Scale  CellScale
}

// Cell is a resolved node of the layout tree. Its geometry is computed once,
// at construction time, and never changes afterwards. T is the type of the
// contents attached by the host.
type Cell[T any] struct {
	config   CellConfig
	name     string
	bounds   Rect
	padding  Rect
	offset   Point
	area     Rect
	scale    CellScale
	align    CellAlign
	cells    []*Cell[T]
	contents []T
}

// NewCell resolves the whole tree described by cfg.
// The config is copied, the caller keeps ownership of cfg.
func NewCell[T any](cfg CellConfig) *Cell[T] {
	return newCell[T](cfg, rootBounds(cfg))
}

func newCell[T any](cfg CellConfig, bounds Rect) *Cell[T] {
	c := &Cell[T]{
		config: cfg.Clone(),
		name:   cfg.Name,
		bounds: bounds,
		scale:  cfg.Scale,
		align:  cfg.Align,
	}
	if c.scale == 0 {
		c.scale = ScaleFit
	}
	if c.align == 0 {
		c.align = AlignCenter
	}

	c.padding = ConvertToRect(cfg.Padding, c.bounds)
	if cfg.Offset != nil {
		if cfg.Offset.X != nil {
			c.offset.X = *cfg.Offset.X
		}
		if cfg.Offset.Y != nil {
			c.offset.Y = *cfg.Offset.Y
		}
	}
	c.area = c.padding.Translate(c.offset.X, c.offset.Y)
	c.cells = c.buildCells(cfg.Cells)

	return c
}

// rootBounds resolves the absolute bounds of the root cell.
func rootBounds(cfg CellConfig) Rect {
	switch {
	case cfg.BoundsFunc != nil:
		return cfg.BoundsFunc()
	case cfg.Bounds != nil:
		return FillRect(*cfg.Bounds)
	default:
		return Rect{Width: minSize, Height: minSize}
	}
}

// buildCells resolves the children in declaration order. The frontier keeps
// the farthest right and bottom edges reached so far; children without an
// explicit position are placed on it.
func (c *Cell[T]) buildCells(children []CellConfig) []*Cell[T] {
	cells := make([]*Cell[T], 0, len(children))
	frontier := NewPoint(c.area.X, c.area.Y)

	for _, child := range children {
		cell := newCell[T](child, childBounds(child.Bounds, c.area, frontier))
		frontier.X = utils.Max(frontier.X, cell.bounds.Right())
		frontier.Y = utils.Max(frontier.Y, cell.bounds.Bottom())
		cells = append(cells, cell)
	}
	return cells
}

// childBounds maps the fractional spec of a child into absolute coordinates
// relative to the parent area.
func childBounds(spec *RectSpec, area Rect, frontier Point) Rect {
	if spec == nil {
		spec = &RectSpec{}
	}
	b := Rect{X: frontier.X, Y: frontier.Y}

	if spec.X != nil {
		b.X = area.X + *spec.X*area.Width
	}
	if spec.Y != nil {
		b.Y = area.Y + *spec.Y*area.Height
	}
	if spec.Width != nil {
		b.Width = *spec.Width * area.Width
	} else {
		b.Width = area.Right() - b.X
	}
	if spec.Height != nil {
		b.Height = *spec.Height * area.Height
	} else {
		b.Height = area.Bottom() - b.Y
	}
	return b
}

// Config returns a copy of the config the cell was built from, with the
// bounds as they were authored.
func (c *Cell[T]) Config() CellConfig {
	return c.config.Clone()
}

// SetConfig replaces the stored config. The geometry is not recomputed;
// build a new tree to apply a different layout.
func (c *Cell[T]) SetConfig(cfg CellConfig) {
	c.config = cfg.Clone()
}

// Name returns the cell name.
func (c *Cell[T]) Name() string { return c.name }

// Bounds returns the outer rectangle in pixels.
func (c *Cell[T]) Bounds() Rect { return c.bounds }

// Padding returns the bounds shrunk by the padding spec.
func (c *Cell[T]) Padding() Rect { return c.padding }

// Offset returns the translation applied on top of the padding rectangle.
func (c *Cell[T]) Offset() Point { return c.offset }

// Area returns the rectangle where children and contents are laid out.
func (c *Cell[T]) Area() Rect { return c.area }

// Scale returns the default scale type of the contents.
func (c *Cell[T]) Scale() CellScale { return c.scale }

// Align returns the default align type of the contents.
func (c *Cell[T]) Align() CellAlign { return c.align }

// Debug returns the cosmetic debug options, nil when none were set.
func (c *Cell[T]) Debug() *DebugConfig { return c.config.Debug }

// Cells returns the direct children in declaration order.
func (c *Cell[T]) Cells() []*Cell[T] { return c.cells }

// Contents returns the contents attached to the cell.
func (c *Cell[T]) Contents() []T { return c.contents }

// AddContent appends contents to the cell. It has no effect on the geometry.
func (c *Cell[T]) AddContent(items ...T) {
	c.contents = append(c.contents, items...)
}

// ClearContents detaches every content.
func (c *Cell[T]) ClearContents() {
	c.contents = nil
}

// GetCells returns the cell followed by all of its descendants in
// depth-first pre-order.
func (c *Cell[T]) GetCells() []*Cell[T] {
	var cells []*Cell[T]
	c.Walk(func(cell *Cell[T], _ int) bool {
		cells = append(cells, cell)
		return true
	})
	return cells
}

// GetCellByName returns the first cell with the given name in depth-first
// pre-order. The boolean is false when there is no such cell.
func (c *Cell[T]) GetCellByName(name string) (*Cell[T], bool) {
	var found *Cell[T]
	c.Walk(func(cell *Cell[T], _ int) bool {
		if found != nil {
			return false
		}
		if cell.name == name {
			found = cell
			return false
		}
		return true
	})
	return found, found != nil
}

// Walk visits the tree in depth-first pre-order. The children of a cell are
// skipped when fn returns false for it.
func (c *Cell[T]) Walk(fn func(cell *Cell[T], depth int) bool) {
	c.walk(fn, 0)
}

func (c *Cell[T]) walk(fn func(*Cell[T], int) bool, depth int) {
	if !fn(c, depth) {
		return
	}
	for _, child := range c.cells {
		child.walk(fn, depth+1)
	}
}

// MergeContentConfig returns the placement of a content in this cell.
// Every field of cfg overrides the cell default when set: the padding is
// converted against the padding rectangle of the cell and the offset
// replaces the cell offset axis by axis.
func (c *Cell[T]) MergeContentConfig(cfg *ContentConfig) MergedConfig {
	m := MergedConfig{
		Align:  c.align,
		Area:   c.area,
		Offset: c.offset,
		Scale:  c.scale,
	}
	if cfg == nil {
		return m
	}

	if cfg.Align != 0 {
		m.Align = cfg.Align
	}
	if cfg.Scale != 0 {
		m.Scale = cfg.Scale
	}
	if cfg.Offset != nil {
		if cfg.Offset.X != nil {
			m.Offset.X = *cfg.Offset.X
		}
		if cfg.Offset.Y != nil {
			m.Offset.Y = *cfg.Offset.Y
		}
	}

	area := c.padding
	if cfg.Padding != nil {
		area = ConvertToRect(cfg.Padding, c.padding)
	}
	m.Area = area.Translate(m.Offset.X, m.Offset.Y)

	return m
}
