// Package pattern generates built-in hardware test frames: enough to verify
// wiring, pixel order and panel mapping without any content source.
package pattern

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	Gradient   Kind = "gradient"
	Rainbow    Kind = "rainbow"
)

type Runner struct {
	kind Kind
	w, h int
	step int
}

func NewRunner(kind Kind, w, h int) *Runner { return &Runner{kind: kind, w: w, h: h} }

func (r *Runner) Kind() Kind { return r.kind }

// Step fills one frame into rgb (len w*h*3); returns false when the pattern
// has completed. Rainbow and Gradient never complete on their own.
func (r *Runner) Step(rgb []byte) bool {
	n := r.w * r.h
	if len(rgb) < n*3 {
		return false
	}
	for i := range rgb[:n*3] {
		rgb[i] = 0
	}

	switch r.kind {
	case IndexSweep:
		// One white pixel walking the whole surface in submit order.
		idx := r.step
		if idx >= n {
			return false
		}
		rgb[idx*3+0], rgb[idx*3+1], rgb[idx*3+2] = 255, 255, 255
	case RGBTest:
		phase := r.step % 3
		for i := 0; i < n; i++ {
			rgb[i*3+phase] = 255
		}
	case Gradient:
		for y := 0; y < r.h; y++ {
			for x := 0; x < r.w; x++ {
				v := byte(x * 255 / max(1, r.w-1))
				i := (y*r.w + x) * 3
				rgb[i+0], rgb[i+1], rgb[i+2] = v, v, v
			}
		}
	case Rainbow:
		for y := 0; y < r.h; y++ {
			for x := 0; x < r.w; x++ {
				h := float64((x+y+r.step)%r.w) / float64(max(1, r.w))
				cr, cg, cb := hsv(h)
				i := (y*r.w + x) * 3
				rgb[i+0], rgb[i+1], rgb[i+2] = cr, cg, cb
			}
		}
	default:
		return false
	}
	r.step++
	return true
}

func hsv(h float64) (byte, byte, byte) {
	h *= 6
	f := h - float64(int(h))
	q := byte(255 * (1 - f))
	t := byte(255 * f)
	switch int(h) % 6 {
	case 0:
		return 255, t, 0
	case 1:
		return q, 255, 0
	case 2:
		return 0, 255, t
	case 3:
		return 0, q, 255
	case 4:
		return t, 0, 255
	default:
		return 255, 0, q
	}
}
