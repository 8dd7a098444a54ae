package hub75

import (
	"errors"
	"testing"
)

func TestSingleClaimPerDevice(t *testing.T) {
	cfg := Config{Backend: BackendSim, Width: 64, Height: 32}

	d1, err := Open(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	// The panel is claimed; a second controller may not alias it.
	if _, err := Open(cfg); !errors.Is(err, ErrClaimed) {
		t.Fatalf("second open: got %v, want ErrClaimed", err)
	}

	if err := d1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Re-initialization after Close is explicit and allowed.
	d2, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	defer d2.Close()
}

func TestSubmitAfterClose(t *testing.T) {
	d, err := Open(Config{Backend: BackendSim, Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Submit(make([]byte, 64*32*3)); !errors.Is(err, ErrClosed) {
		t.Fatalf("submit after close: got %v, want ErrClosed", err)
	}
	// Double close stays quiet.
	if err := d.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestSimRejectsWrongFrameSize(t *testing.T) {
	d, err := Open(Config{Backend: BackendSim, Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := d.Submit(make([]byte, 63*32*3)); err == nil {
		t.Fatal("expected error for undersized frame")
	}
	if err := d.Submit(make([]byte, 64*32*3)); err != nil {
		t.Fatalf("full frame rejected: %v", err)
	}
}
