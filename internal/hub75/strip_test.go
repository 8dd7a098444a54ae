package hub75

import (
	"errors"
	"testing"
)

// Without an SPI port the strip backend falls back to the console screen;
// the claim and close lifecycle is identical on both paths.
func TestStripLifecycle(t *testing.T) {
	cfg := Config{Backend: BackendStrip, Width: 64, Height: 32, PanelWidth: 32}

	d, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.Width() != 64 || d.Height() != 32 {
		t.Fatalf("geometry %dx%d, want 64x32", d.Width(), d.Height())
	}

	if _, err := Open(cfg); !errors.Is(err, ErrClaimed) {
		t.Fatalf("second open: got %v, want ErrClaimed", err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := d.Submit(make([]byte, 64*32*3)); !errors.Is(err, ErrClosed) {
		t.Fatalf("submit after close: got %v, want ErrClosed", err)
	}

	// Close released the port and the claim; reopening must work.
	d2, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("close reopened: %v", err)
	}
}
