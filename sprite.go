package cellgrid

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/esimov/cellgrid/utils"
)

// Sprite is a raster content placed in a cell.
type Sprite struct {
	// Src is the path or the URL the image was loaded from.
	Src    string
	Image  *image.NRGBA
	Config *ContentConfig
}

// NewSprite wraps an image already held in memory.
func NewSprite(img image.Image, cfg *ContentConfig) *Sprite {
	return &Sprite{Image: imgToNRGBA(img), Config: cfg}
}

// LoadSprite loads the image referenced by spec and applies its filter.
// Relative paths are resolved against baseDir. Downloads are bound to ctx.
func LoadSprite(ctx context.Context, spec ContentSpec, baseDir string) (*Sprite, error) {
	var (
		img *image.NRGBA
		err error
	)

	if utils.IsValidUrl(spec.Src) {
		data, derr := utils.Download(ctx, spec.Src)
		if derr != nil {
			return nil, derr
		}
		img, err = decodeBytes(data)
	} else {
		path := spec.Src
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		img, err = decodeImg(path)
	}
	if err != nil {
		return nil, fmt.Errorf("content %q: %w", spec.Src, err)
	}

	if img, err = applyFilter(img, spec.Filter); err != nil {
		return nil, fmt.Errorf("content %q: %w", spec.Src, err)
	}

	cfg := spec.ContentConfig
	return &Sprite{
		Src:    spec.Src,
		Image:  img,
		Config: &cfg,
	}, nil
}

// Size returns the natural size of the sprite.
func (s *Sprite) Size() Dimension {
	return DimensionOf(s.Image.Bounds())
}

// Placement computes where the sprite is drawn inside cell: the merged
// content config, the size after scaling and the top-left position.
func (s *Sprite) Placement(cell *Cell[*Sprite]) (MergedConfig, Rect, error) {
	m := cell.MergeContentConfig(s.Config)

	scale, err := Fit(s.Size(), m.Area.Size(), m.Scale)
	if err != nil {
		return m, Rect{}, err
	}
	dim := Dimension{
		Width:  s.Size().Width * scale.X,
		Height: s.Size().Height * scale.Y,
	}
	pos, err := Align(dim, m.Area, m.Align)
	if err != nil {
		return m, Rect{}, err
	}
	return m, NewRect(pos.X, pos.Y, dim.Width, dim.Height), nil
}
