// Package layout maps logical image coordinates onto physical LED positions.
package layout

// Mapper mirrors/flips the logical image before it reaches the panel, for
// installations where the panel hangs rotated or is viewed through glass.
type Mapper string

const (
	MapperU          Mapper = "u" // identity
	MapperMirror     Mapper = "mirror"
	MapperFlip       Mapper = "flip"
	MapperMirrorFlip Mapper = "mirror_flip"
)

type Dim struct{ W, H int }

// Layout describes how chained panels are wired. Panels sit side by side
// along X in chain order; within a panel LEDs run row-major, with every odd
// row reversed when Serpentine is set.
type Layout struct {
	Dim        Dim
	PanelWidth int
	Mapper     Mapper
	Serpentine bool
}

func (l Layout) Count() int { return l.Dim.W * l.Dim.H }

// Apply runs the image mapper on a logical coordinate.
func (l Layout) Apply(x, y int) (int, int) {
	switch l.Mapper {
	case MapperMirror:
		x = l.Dim.W - 1 - x
	case MapperFlip:
		y = l.Dim.H - 1 - y
	case MapperMirrorFlip:
		x = l.Dim.W - 1 - x
		y = l.Dim.H - 1 - y
	}
	return x, y
}

// Index maps x,y -> linear LED index (0..N-1).
func (l Layout) Index(x, y int) int {
	xx, yy := l.Apply(x, y)
	pw := l.PanelWidth
	if pw <= 0 || pw > l.Dim.W {
		pw = l.Dim.W
	}
	panel := xx / pw
	lx := xx % pw
	if l.Serpentine && yy%2 == 1 {
		lx = pw - 1 - lx
	}
	return panel*pw*l.Dim.H + yy*pw + lx
}
