package cellgrid

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/cellgrid/imop"
	"github.com/esimov/cellgrid/utils"
	"golang.org/x/sync/errgroup"
)

// maxDownloads limits the number of contents loaded concurrently.
const maxDownloads = 4

// Processor options
type Processor struct {
	// Width and Height override the root bounds of the layout when both are set.
	Width  int
	Height int
	// Background is the hex color the canvas is cleared with. Transparent when empty.
	Background string
	// Composite is the Porter-Duff operation used to paint the contents.
	Composite string
	// Blend is the optional blend mode used to paint the contents.
	Blend string
	// BaseDir is the directory relative content paths are resolved from.
	// It defaults to the directory of the layout file.
	BaseDir string
	// Format is the layout format used when the source is not a file.
	Format Format
	// Output is the output extension used when the destination is not a file.
	Output string
	// Debug outlines every cell, not only the ones with a debug config.
	Debug   bool
	Spinner *utils.Spinner
}

// Scene is a layout together with its loaded contents.
type Scene struct {
	Layout *Layout
	// Sprites is parallel to Layout.Contents.
	Sprites []*Sprite
}

// LoadScene loads every content of the layout. Relative paths are resolved
// against baseDir.
func LoadScene(ctx context.Context, l *Layout, baseDir string) (*Scene, error) {
	sprites := make([]*Sprite, len(l.Contents))

	// The first failure cancels the downloads still running.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDownloads)
	for i, spec := range l.Contents {
		i, spec := i, spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := LoadSprite(gctx, spec, baseDir)
			if err != nil {
				return err
			}
			sprites[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Scene{Layout: l, Sprites: sprites}, nil
}

// Build resolves the grid and attaches the sprites to their cells.
// When bounds is not nil it sizes the root cell.
func (s *Scene) Build(bounds func() Rect) *Cell[*Sprite] {
	cfg := s.Layout.Grid
	if bounds != nil {
		cfg.BoundsFunc = bounds
	}
	root := NewCell[*Sprite](cfg)

	for i, spec := range s.Layout.Contents {
		if cell, ok := root.GetCellByName(spec.Cell); ok && s.Sprites[i] != nil {
			cell.AddContent(s.Sprites[i])
		}
	}
	return root
}

// Validate checks the rendering options. The returned error wraps
// ErrInvalidConfiguration.
func (p *Processor) Validate() error {
	if p.Background != "" {
		if _, err := utils.ParseHexColor(p.Background); err != nil {
			return fmt.Errorf("%w: background: %v", ErrInvalidConfiguration, err)
		}
	}
	if p.Composite != "" && !imop.IsValidOp(p.Composite) {
		return fmt.Errorf("%w: unknown composite operation %q", ErrInvalidConfiguration, p.Composite)
	}
	if p.Blend != "" && !imop.IsValidBlend(p.Blend) {
		return fmt.Errorf("%w: unknown blend mode %q", ErrInvalidConfiguration, p.Blend)
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidConfiguration, p.Width, p.Height)
	}
	return nil
}

// bounds returns the root bounds given by the processor size, if any.
func (p *Processor) bounds() func() Rect {
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}
	return func() Rect {
		return NewRect(0, 0, float64(p.Width), float64(p.Height))
	}
}

// Process decodes the layout read from r, renders it and encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	format, baseDir := p.Format, p.BaseDir
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		if fm, err := FormatOf(f.Name()); err == nil {
			format = fm
		}
		if baseDir == "" {
			baseDir = filepath.Dir(f.Name())
		}
	}

	l, err := DecodeLayout(r, format)
	if err != nil {
		return err
	}
	scene, err := LoadScene(context.Background(), l, baseDir)
	if err != nil {
		return err
	}
	root := scene.Build(p.bounds())

	ext := p.outputExt(w)
	if ext == ".svg" {
		return p.RenderSVG(w, root)
	}
	img, err := p.Render(root)
	if err != nil {
		return err
	}
	return encodeImgAs(w, img, ext)
}

func (p *Processor) outputExt(w io.Writer) string {
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		if ext := filepath.Ext(f.Name()); ext != "" {
			return strings.ToLower(ext)
		}
	}
	if p.Output != "" {
		return "." + strings.TrimPrefix(strings.ToLower(p.Output), ".")
	}
	return ".png"
}

// Render paints the resolved tree: the background, the debug rectangles and
// the sprites of every cell, in depth-first pre-order.
func (p *Processor) Render(root *Cell[*Sprite]) (*image.NRGBA, error) {
	rect := canvasRect(root)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: the grid %q has no size", ErrInvalidConfiguration, root.Name())
	}
	canvas := image.NewNRGBA(rect)

	if p.Background != "" {
		bg := utils.HexToRGBA(p.Background)
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	}

	op := imop.InitOp()
	if p.Composite != "" {
		op.Set(p.Composite)
	}
	var blend *imop.Blend
	if p.Blend != "" {
		blend = imop.NewBlend()
		blend.Set(p.Blend)
	}

	var err error
	root.Walk(func(cell *Cell[*Sprite], depth int) bool {
		if err != nil {
			return false
		}
		if col, fill, ok := debugStyle(cell, depth, p.Debug); ok {
			drawRect(canvas, cell.Bounds().Image(), col, fill)
		}
		for _, s := range cell.Contents() {
			if err = drawSprite(canvas, cell, s, op, blend); err != nil {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return canvas, nil
}

// drawSprite scales, aligns and composites a sprite onto the canvas.
// Enveloped sprites are clipped to the content area.
func drawSprite(canvas *image.NRGBA, cell *Cell[*Sprite], s *Sprite, op *imop.Composite, blend *imop.Blend) error {
	m, rect, err := s.Placement(cell)
	if err != nil {
		return fmt.Errorf("cell %q: %w", cell.Name(), err)
	}
	dst := rect.Image()
	if dst.Empty() {
		return nil
	}

	img := s.Image
	if dst.Dx() != img.Bounds().Dx() || dst.Dy() != img.Bounds().Dy() {
		img = imaging.Resize(img, dst.Dx(), dst.Dy(), imaging.Lanczos)
	}

	clip := canvas.Bounds()
	if m.Scale == ScaleEnvelop {
		clip = m.Area.Image()
	}
	op.Draw(canvas, img, dst.Min, clip, blend)

	return nil
}

// canvasRect returns the pixel rectangle covering the root bounds from the origin.
func canvasRect[T any](root *Cell[T]) image.Rectangle {
	b := root.Bounds()
	return image.Rect(0, 0, int(math.Round(b.Right())), int(math.Round(b.Bottom())))
}
