package cellgrid

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/esimov/cellgrid/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// writePNG saves a solid w x h image into dir and returns its name.
func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)

	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return name
}

func isRed(c color.NRGBA) bool {
	return c.R > 0xf0 && c.G < 0x10 && c.B < 0x10 && c.A == 0xff
}

const sceneLayout = `
grid:
  name: scene
  bounds: {width: 100, height: 100}
  cells:
    - name: left
      bounds: {width: 0.5}
    - name: right
      bounds: {y: 0}
contents:
  - cell: left
    src: square.png
    scale: none
  - cell: right
    src: wide.png
    scale: envelop
`

func sceneDir(t *testing.T) string {
	dir := t.TempDir()
	writePNG(t, dir, "square.png", 10, 10, red)
	writePNG(t, dir, "wide.png", 20, 10, red)
	return dir
}

func TestProcessor_Process(t *testing.T) {
	dir := sceneDir(t)
	p := &Processor{BaseDir: dir, Background: "#ffffff"}

	var buf bytes.Buffer
	require.NoError(t, p.Process(strings.NewReader(sceneLayout), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	out := imgToNRGBA(img)
	assert.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())

	tests := map[string]struct {
		x, y int
		red  bool
	}{
		"left top corner":       {x: 5, y: 5},
		"left of the sprite":    {x: 19, y: 50},
		"centered sprite":       {x: 25, y: 50, red: true},
		"sprite last pixel":     {x: 29, y: 54, red: true},
		"right of the sprite":   {x: 30, y: 50},
		"clipped envelop":       {x: 40, y: 50},
		"envelop area start":    {x: 50, y: 0, red: true},
		"envelop area end":      {x: 99, y: 99, red: true},
		"envelop center":        {x: 75, y: 50, red: true},
		"left bottom corner":    {x: 0, y: 99},
		"below the left sprite": {x: 25, y: 60},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := out.NRGBAAt(tt.x, tt.y)
			if tt.red {
				assert.True(t, isRed(c), "got %v", c)
			} else {
				assert.Equal(t, white, c)
			}
		})
	}
}

func TestProcessor_ProcessSize(t *testing.T) {
	dir := sceneDir(t)
	p := &Processor{BaseDir: dir, Width: 40, Height: 20, Output: "bmp"}

	var buf bytes.Buffer
	require.NoError(t, p.Process(strings.NewReader(sceneLayout), &buf))

	img, err := decodeReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestProcessor_ProcessFile(t *testing.T) {
	dir := sceneDir(t)
	src := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(src, []byte(sceneLayout), 0644))

	in, err := os.Open(src)
	require.NoError(t, err)
	defer in.Close()

	dst := filepath.Join(t.TempDir(), "scene.jpg")
	out, err := os.Create(dst)
	require.NoError(t, err)

	// The contents are resolved against the directory of the layout.
	p := &Processor{}
	require.NoError(t, p.Process(in, out))
	require.NoError(t, out.Close())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", http.DetectContentType(data))
}

func TestProcessor_RenderDebug(t *testing.T) {
	assert := assert.New(t)

	root := NewCell[*Sprite](CellConfig{
		Bounds: &RectSpec{Width: Float(100), Height: Float(100)},
		Cells: []CellConfig{
			{Name: "outline", Bounds: &RectSpec{Width: Float(0.5)}},
			{
				Name:   "filled",
				Bounds: &RectSpec{Y: Float(0)},
				Debug:  &DebugConfig{Color: 0x00ff00, Fill: true},
			},
		},
	})

	// Only the cells with a debug config are painted.
	img, err := (&Processor{}).Render(root)
	assert.NoError(err)
	assert.Equal(color.NRGBA{}, img.NRGBAAt(0, 0))
	fill := img.NRGBAAt(75, 50)
	assert.InDelta(fillAlpha, fill.A, 1)
	assert.Greater(fill.G, uint8(0xf0))
	assert.Zero(fill.R)

	// Debug outlines every cell with the palette color of its depth.
	img, err = (&Processor{Debug: true}).Render(root)
	assert.NoError(err)
	assert.Equal(utils.Uint32ToRGBA(debugPalette[1]), img.NRGBAAt(0, 50))
	assert.Equal(utils.Uint32ToRGBA(debugPalette[1]), img.NRGBAAt(49, 50))
	assert.Equal(color.NRGBA{}, img.NRGBAAt(25, 50))
}

func TestProcessor_RenderErrors(t *testing.T) {
	assert := assert.New(t)

	// A grid without bounds has no pixels.
	_, err := (&Processor{}).Render(NewCell[*Sprite](CellConfig{Name: "empty"}))
	assert.ErrorIs(err, ErrInvalidConfiguration)

	var buf bytes.Buffer
	assert.ErrorIs((&Processor{}).RenderSVG(&buf, NewCell[*Sprite](CellConfig{})), ErrInvalidConfiguration)
	assert.Zero(buf.Len())

	root := NewCell[*Sprite](CellConfig{
		Name:   "bad",
		Bounds: &RectSpec{Width: Float(10), Height: Float(10)},
	})
	sprite := NewSprite(image.NewNRGBA(image.Rect(0, 0, 2, 2)), &ContentConfig{Scale: CellScale(99)})
	root.AddContent(sprite)

	_, err = (&Processor{}).Render(root)
	assert.ErrorIs(err, ErrInvalidConfiguration)
	assert.ErrorIs((&Processor{}).RenderSVG(&buf, root), ErrInvalidConfiguration)
}

func TestProcessor_RenderSVG(t *testing.T) {
	dir := sceneDir(t)
	l, err := DecodeLayout(strings.NewReader(sceneLayout), FormatYAML)
	require.NoError(t, err)
	scene, err := LoadScene(context.Background(), l, dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := &Processor{Debug: true}
	require.NoError(t, p.RenderSVG(&buf, scene.Build(nil)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>scene</title>")
	assert.Equal(t, 2, strings.Count(out, "<image"))
	assert.Equal(t, 2, strings.Count(out, "data:image/png;base64,"))
	// One clip path for the enveloped sprite.
	assert.Equal(t, 1, strings.Count(out, "<clipPath"))
	assert.Contains(t, out, `clip-path="url(#clip-1)"`)
	// Three debug rectangles plus the clip rectangle.
	assert.Equal(t, 4, strings.Count(out, "<rect"))
}

func TestLoadScene(t *testing.T) {
	dir := sceneDir(t)
	l, err := DecodeLayout(strings.NewReader(sceneLayout), FormatYAML)
	require.NoError(t, err)

	scene, err := LoadScene(context.Background(), l, dir)
	require.NoError(t, err)
	require.Len(t, scene.Sprites, 2)
	assert.Equal(t, Dimension{Width: 20, Height: 10}, scene.Sprites[1].Size())

	called := 0
	root := scene.Build(func() Rect {
		called++
		return NewRect(0, 0, 300, 200)
	})
	assert.Equal(t, 1, called)
	assert.Equal(t, NewRect(0, 0, 300, 200), root.Bounds())

	left, ok := root.GetCellByName("left")
	require.True(t, ok)
	assert.Equal(t, []*Sprite{scene.Sprites[0]}, left.Contents())

	// The layout itself is left untouched.
	assert.Nil(t, l.Grid.BoundsFunc)

	l.Contents[0].Src = "missing.png"
	_, err = LoadScene(context.Background(), l, dir)
	assert.Error(t, err)
}

func TestLoadScene_Cancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	dir := sceneDir(t)
	slow := ContentSpec{Cell: "left", Src: srv.URL + "/slow.png"}
	l := &Layout{}

	tests := map[string]struct {
		contents []ContentSpec
		ctx      func() (context.Context, context.CancelFunc)
		err      error
	}{
		"cancelled by the caller": {
			contents: []ContentSpec{slow},
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 50*time.Millisecond)
			},
			err: context.DeadlineExceeded,
		},
		"cancelled by a failed content": {
			contents: []ContentSpec{slow, {Cell: "right", Src: "missing.png"}},
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			err: os.ErrNotExist,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			l.Contents = tt.contents

			errc := make(chan error, 1)
			go func() {
				_, err := LoadScene(ctx, l, dir)
				errc <- err
			}()

			select {
			case err := <-errc:
				assert.ErrorIs(t, err, tt.err)
			case <-time.After(5 * time.Second):
				t.Fatal("LoadScene did not return")
			}
		})
	}
}

func TestProcessor_Validate(t *testing.T) {
	tests := map[string]struct {
		p       Processor
		invalid bool
	}{
		"defaults":          {p: Processor{}},
		"all set":           {p: Processor{Background: "#fff", Composite: "dst_over", Blend: "multiply", Width: 10, Height: 10}},
		"invalid color":     {p: Processor{Background: "#zzzzzz"}, invalid: true},
		"unknown composite": {p: Processor{Composite: "src-over"}, invalid: true},
		"unknown blend":     {p: Processor{Blend: "dodge"}, invalid: true},
		"negative size":     {p: Processor{Width: -1, Height: 10}, invalid: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
