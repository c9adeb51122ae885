package cellgrid

import (
	"image"
	"image/color"
	"log"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/esimov/cellgrid/utils"
)

const (
	maxScreenX = 1366
	maxScreenY = 768

	defaultWindowX = 800
	defaultWindowY = 600
)

var defaultBkgColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// Gui is the live preview of a layout. The root cell is sized by the window,
// so the tree is resolved again every time the window is resized.
type Gui struct {
	cfg struct {
		window struct {
			w, h  float64
			title string
		}
		background color.NRGBA
	}
	proc struct {
		scene *Scene
		frame *image.NRGBA
		size  image.Point
		dirty bool
	}
	cp     *Processor
	reload chan *Scene
}

// NewGUI initializes the Gio interface.
func NewGUI(scene *Scene, p *Processor) *Gui {
	g := &Gui{
		cp:     p,
		reload: make(chan *Scene, 1),
	}
	g.proc.scene = scene
	g.proc.dirty = true
	g.initWindow()

	return g
}

// initWindow sets the initial window size: the processor size when set,
// otherwise the root bounds of the layout, shrunk to fit the screen.
func (g *Gui) initWindow() {
	w, h := float64(defaultWindowX), float64(defaultWindowY)
	switch {
	case g.cp.Width > 0 && g.cp.Height > 0:
		w, h = float64(g.cp.Width), float64(g.cp.Height)
	case g.proc.scene.Layout.Grid.Bounds != nil:
		b := FillRect(*g.proc.scene.Layout.Grid.Bounds)
		if b.Width >= 1 && b.Height >= 1 {
			w, h = b.Right(), b.Bottom()
		}
	}

	// Maintain the aspect ratio in case the layout is greater than the screen.
	if w > maxScreenX || h > maxScreenY {
		r := utils.Min(maxScreenX/w, maxScreenY/h)
		w, h = w*r, h*r
	}
	g.cfg.window.w, g.cfg.window.h = w, h

	g.cfg.background = defaultBkgColor
	if g.cp.Background != "" {
		g.cfg.background = utils.HexToRGBA(g.cp.Background)
	}

	g.cfg.window.title = "cellgrid"
	if name := g.proc.scene.Layout.Grid.Name; name != "" {
		g.cfg.window.title += " - " + name
	}
}

// Reload replaces the previewed scene. It never blocks: a scene which was
// not picked up yet is replaced by the newer one.
func (g *Gui) Reload(scene *Scene) {
	for {
		select {
		case g.reload <- scene:
			return
		default:
			select {
			case <-g.reload:
			default:
			}
		}
	}
}

// Run is the core method of the Gio GUI application. It has to be called
// from a separate goroutine while app.Main runs on the main one. It returns
// when the window is closed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.window.title),
		app.Size(unit.Dp(g.cfg.window.w), unit.Dp(g.cfg.window.h)),
	)

	var ops op.Ops
	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				g.draw(gtx)
				g.handleKeys(gtx, w)
				e.Frame(gtx.Ops)
			case key.Event:
				if e.Name == key.NameEscape {
					w.Perform(system.ActionClose)
				}
			case system.DestroyEvent:
				return e.Err
			}
		case scene := <-g.reload:
			g.proc.scene = scene
			g.proc.dirty = true
			w.Invalidate()
		}
	}
}

// handleKeys closes the window on ESC.
func (g *Gui) handleKeys(gtx layout.Context, w *app.Window) {
	for _, ev := range gtx.Events(g) {
		if e, ok := ev.(key.Event); ok && e.Name == key.NameEscape {
			w.Perform(system.ActionClose)
		}
	}
	key.InputOp{Tag: g, Keys: key.NameEscape}.Add(gtx.Ops)
}

// draw renders the scene for the current window size and paints it.
// The frame is cached until the window is resized or the scene reloaded.
func (g *Gui) draw(gtx layout.Context) {
	paint.Fill(gtx.Ops, g.cfg.background)

	size := gtx.Constraints.Max
	if g.proc.dirty || size != g.proc.size {
		g.proc.size = size
		g.proc.dirty = false

		root := g.proc.scene.Build(func() Rect {
			return NewRect(0, 0, float64(size.X), float64(size.Y))
		})
		frame, err := g.cp.Render(root)
		if err != nil {
			log.Println(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		g.proc.frame = frame
	}

	if g.proc.frame != nil {
		defer clip.Rect(g.proc.frame.Bounds()).Push(gtx.Ops).Pop()
		paint.NewImageOp(g.proc.frame).Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
	}
}
