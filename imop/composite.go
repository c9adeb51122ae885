package imop

import (
	"image"
	"image/color"

	"github.com/esimov/cellgrid/utils"
)

// The supported Porter-Duff composition operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// factors holds the fraction of the source (fa) and of the backdrop (fb)
// which contributes to the result, given the source and backdrop alpha.
type factors func(as, ab float64) (fa, fb float64)

var compositeOps = map[string]factors{
	Clear:   func(as, ab float64) (float64, float64) { return 0, 0 },
	Copy:    func(as, ab float64) (float64, float64) { return 1, 0 },
	Dst:     func(as, ab float64) (float64, float64) { return 0, 1 },
	SrcOver: func(as, ab float64) (float64, float64) { return 1, 1 - as },
	DstOver: func(as, ab float64) (float64, float64) { return 1 - ab, 1 },
	SrcIn:   func(as, ab float64) (float64, float64) { return ab, 0 },
	DstIn:   func(as, ab float64) (float64, float64) { return 0, as },
	SrcOut:  func(as, ab float64) (float64, float64) { return 1 - ab, 0 },
	DstOut:  func(as, ab float64) (float64, float64) { return 0, 1 - as },
	SrcAtop: func(as, ab float64) (float64, float64) { return ab, 1 - as },
	DstAtop: func(as, ab float64) (float64, float64) { return 1 - ab, as },
	Xor:     func(as, ab float64) (float64, float64) { return 1 - ab, 1 - as },
}

// IsValidOp reports whether cop is one of the supported composition operations.
func IsValidOp(cop string) bool {
	_, ok := compositeOps[cop]
	return ok
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes a new Composite with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operations.
// Unsupported operations are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composites src over the dst backdrop. The origin of src is placed at
// pt and only the pixels falling inside clip are touched. When blend is not
// nil the source colors are mixed with the backdrop before the composition.
func (op *Composite) Draw(dst *image.NRGBA, src image.Image, pt image.Point, clip image.Rectangle, blend *Blend) {
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(pt).Intersect(clip).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	fn := compositeOps[op.current]

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sc := color.NRGBAModel.Convert(src.At(sb.Min.X+x-pt.X, sb.Min.Y+y-pt.Y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			bc := color.NRGBA{R: dst.Pix[i], G: dst.Pix[i+1], B: dst.Pix[i+2], A: dst.Pix[i+3]}

			rs, gs, bs, as := normalize(sc)
			rb, gb, bb, ab := normalize(bc)

			if blend != nil && blend.OpType != "" && ab > 0 {
				// The blended color replaces the source color where the backdrop is opaque.
				rs = (1-ab)*rs + ab*blend.apply(rb, rs)
				gs = (1-ab)*gs + ab*blend.apply(gb, gs)
				bs = (1-ab)*bs + ab*blend.apply(bb, bs)
			}

			// applying the alpha composition formula
			fa, fb := fn(as, ab)
			an := as*fa + ab*fb
			rn, gn, bn := 0.0, 0.0, 0.0
			if an > 0 {
				rn = (as*fa*rs + ab*fb*rb) / an
				gn = (as*fa*gs + ab*fb*gb) / an
				bn = (as*fa*bs + ab*fb*bb) / an
			}

			dst.Pix[i+0] = denormalize(rn)
			dst.Pix[i+1] = denormalize(gn)
			dst.Pix[i+2] = denormalize(bn)
			dst.Pix[i+3] = denormalize(an)
		}
	}
}

func normalize(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func denormalize(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}
