package layout

import "testing"

func TestIdentityMapping(t *testing.T) {
	l := Layout{Dim: Dim{W: 4, H: 2}, PanelWidth: 4, Mapper: MapperU}
	if got := l.Index(0, 0); got != 0 {
		t.Fatalf("Index(0,0) = %d, want 0", got)
	}
	if got := l.Index(3, 1); got != 7 {
		t.Fatalf("Index(3,1) = %d, want 7", got)
	}
	if l.Count() != 8 {
		t.Fatalf("Count = %d, want 8", l.Count())
	}
}

func TestMirrorAndFlip(t *testing.T) {
	l := Layout{Dim: Dim{W: 4, H: 2}, PanelWidth: 4, Mapper: MapperMirror}
	if got := l.Index(0, 0); got != 3 {
		t.Fatalf("mirror Index(0,0) = %d, want 3", got)
	}

	l.Mapper = MapperFlip
	if got := l.Index(0, 0); got != 4 {
		t.Fatalf("flip Index(0,0) = %d, want 4", got)
	}

	l.Mapper = MapperMirrorFlip
	if got := l.Index(0, 0); got != 7 {
		t.Fatalf("mirror_flip Index(0,0) = %d, want 7", got)
	}
}

func TestSerpentineRows(t *testing.T) {
	l := Layout{Dim: Dim{W: 4, H: 4}, PanelWidth: 4, Mapper: MapperU, Serpentine: true}
	// Even rows run forward, odd rows backward.
	if got := l.Index(0, 0); got != 0 {
		t.Fatalf("Index(0,0) = %d, want 0", got)
	}
	if got := l.Index(0, 1); got != 7 {
		t.Fatalf("Index(0,1) = %d, want 7", got)
	}
	if got := l.Index(3, 1); got != 4 {
		t.Fatalf("Index(3,1) = %d, want 4", got)
	}
}

func TestChainedPanels(t *testing.T) {
	// Two 4-wide panels side by side; second panel's LEDs follow the first.
	l := Layout{Dim: Dim{W: 8, H: 2}, PanelWidth: 4, Mapper: MapperU}
	if got := l.Index(4, 0); got != 8 {
		t.Fatalf("Index(4,0) = %d, want 8", got)
	}
	if got := l.Index(7, 1); got != 15 {
		t.Fatalf("Index(7,1) = %d, want 15", got)
	}

	// Every logical pixel must land on a distinct physical LED.
	seen := map[int]bool{}
	for y := 0; y < 2; y++ {
		for x := 0; x < 8; x++ {
			i := l.Index(x, y)
			if i < 0 || i >= l.Count() {
				t.Fatalf("Index(%d,%d) = %d out of range", x, y, i)
			}
			if seen[i] {
				t.Fatalf("Index(%d,%d) = %d already used", x, y, i)
			}
			seen[i] = true
		}
	}
}
