package pattern

import "testing"

func TestIndexSweepCompletes(t *testing.T) {
	r := NewRunner(IndexSweep, 4, 2)
	frame := make([]byte, 4*2*3)
	steps := 0
	for r.Step(frame) {
		steps++
		if steps > 8 {
			t.Fatal("sweep did not terminate")
		}
	}
	if steps != 8 {
		t.Fatalf("sweep ran %d steps, want 8", steps)
	}
}

func TestIndexSweepWalksEveryPixel(t *testing.T) {
	r := NewRunner(IndexSweep, 4, 2)
	frame := make([]byte, 4*2*3)
	for step := 0; r.Step(frame); step++ {
		lit := -1
		for i := 0; i < 8; i++ {
			if frame[i*3] == 255 {
				if lit != -1 {
					t.Fatalf("step %d lit more than one pixel", step)
				}
				lit = i
			}
		}
		if lit != step {
			t.Fatalf("step %d lit pixel %d", step, lit)
		}
	}
}

func TestRGBTestCyclesChannels(t *testing.T) {
	r := NewRunner(RGBTest, 2, 2)
	frame := make([]byte, 2*2*3)
	for want := 0; want < 6; want++ {
		if !r.Step(frame) {
			t.Fatal("rgb test stopped early")
		}
		ch := want % 3
		for i := 0; i < 4; i++ {
			for c := 0; c < 3; c++ {
				v := frame[i*3+c]
				if c == ch && v != 255 {
					t.Fatalf("step %d pixel %d channel %d = %d, want 255", want, i, c, v)
				}
				if c != ch && v != 0 {
					t.Fatalf("step %d pixel %d channel %d = %d, want 0", want, i, c, v)
				}
			}
		}
	}
}

func TestUnknownKindStops(t *testing.T) {
	r := NewRunner(None, 4, 4)
	if r.Step(make([]byte, 4*4*3)) {
		t.Fatal("empty pattern should not run")
	}
}
