// Package fake is an in-memory hub75 driver that records what was submitted,
// useful for headless tests and the panelsim binary.
package fake

import (
	"fmt"
	"sync"
)

type Driver struct {
	W, H int

	// FailSubmits makes the next n Submit calls return an error.
	FailSubmits int

	mu     sync.Mutex
	count  int
	halts  int
	blanks int
	closed bool
	last   []byte
}

func New(w, h int) *Driver { return &Driver{W: w, H: h} }

func (d *Driver) Submit(frame []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("fake: driver closed")
	}
	if len(frame) != d.W*d.H*3 {
		return fmt.Errorf("fake: frame length %d does not match %dx%d", len(frame), d.W, d.H)
	}
	if d.FailSubmits > 0 {
		d.FailSubmits--
		return fmt.Errorf("fake: injected submit failure")
	}
	d.count++
	d.last = append(d.last[:0], frame...)
	return nil
}

func (d *Driver) Blank() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("fake: driver closed")
	}
	d.blanks++
	for i := range d.last {
		d.last[i] = 0
	}
	return nil
}

func (d *Driver) Halt() error {
	d.mu.Lock()
	d.halts++
	d.mu.Unlock()
	return nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func (d *Driver) Width() int  { return d.W }
func (d *Driver) Height() int { return d.H }

// Submits returns how many frames were accepted so far.
func (d *Driver) Submits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Halts returns how many times hardware output was halted.
func (d *Driver) Halts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.halts
}

// Blanks returns how many times the shadow buffer was blanked.
func (d *Driver) Blanks() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blanks
}

// Last returns a copy of the most recently accepted frame.
func (d *Driver) Last() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.last...)
}
