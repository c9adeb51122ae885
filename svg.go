package cellgrid

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/esimov/cellgrid/utils"
)

// RenderSVG writes the resolved tree as an SVG document. Debug cells become
// rectangles and sprites are embedded as PNG data URIs, scaled by the viewer.
func (p *Processor) RenderSVG(w io.Writer, root *Cell[*Sprite]) error {
	rect := canvasRect(root)
	if rect.Empty() {
		return fmt.Errorf("%w: the grid %q has no size", ErrInvalidConfiguration, root.Name())
	}

	// Sprites are encoded ahead so a failure leaves w untouched.
	hrefs := make(map[*Sprite]string)
	for _, cell := range root.GetCells() {
		for _, s := range cell.Contents() {
			if _, ok := hrefs[s]; ok {
				continue
			}
			href, err := dataURI(s)
			if err != nil {
				return err
			}
			hrefs[s] = href
		}
	}

	canvas := svg.New(w)
	canvas.Start(rect.Dx(), rect.Dy())
	if root.Name() != "" {
		canvas.Title(root.Name())
	}
	if p.Background != "" {
		canvas.Rect(0, 0, rect.Dx(), rect.Dy(), "fill:"+cssColor(utils.HexToRGBA(p.Background)))
	}

	var (
		err   error
		clips int
	)
	root.Walk(func(cell *Cell[*Sprite], depth int) bool {
		if err != nil {
			return false
		}
		if col, fill, ok := debugStyle(cell, depth, p.Debug); ok {
			b := cell.Bounds().Image()
			canvas.Rect(b.Min.X, b.Min.Y, b.Dx(), b.Dy(), debugCSS(col, fill))
		}

		for _, s := range cell.Contents() {
			m, r, perr := s.Placement(cell)
			if perr != nil {
				err = fmt.Errorf("cell %q: %w", cell.Name(), perr)
				return false
			}
			dst := r.Image()
			if dst.Empty() {
				continue
			}

			attrs := []string{`preserveAspectRatio="none"`}
			if m.Scale == ScaleEnvelop {
				clips++
				id := fmt.Sprintf("clip-%d", clips)
				area := m.Area.Image()
				canvas.ClipPath(`id="` + id + `"`)
				canvas.Rect(area.Min.X, area.Min.Y, area.Dx(), area.Dy())
				canvas.ClipEnd()
				attrs = append(attrs, `clip-path="url(#`+id+`)"`)
			}
			canvas.Image(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), hrefs[s], attrs...)
		}
		return true
	})
	canvas.End()

	return err
}

func dataURI(s *Sprite) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image); err != nil {
		return "", fmt.Errorf("content %q: %w", s.Src, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func debugCSS(c color.NRGBA, fill bool) string {
	if fill {
		return fmt.Sprintf("fill:%s;fill-opacity:%.2f", cssColor(c), float64(c.A)/255)
	}
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", cssColor(c))
}
