package hub75

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/hub75ctl/internal/layout"
)

// stripDriver drives chained WS2812 panels over SPI instead of a hub75
// port. With no SPI port available it falls back to an ANSI console screen,
// which keeps the whole pipeline testable on a dev machine.
type stripDriver struct {
	claim *claim

	mu     sync.Mutex
	drawer display.Drawer
	port   spi.PortCloser // nil on the console fallback
	lay    layout.Layout
	stage  *image.NRGBA
	scale  float64 // brightness 0..1
	width  int
	height int
	closed bool
}

func openStrip(cfg Config) (Driver, error) {
	dev := cfg.SPIDev
	if dev == "" {
		dev = "strip"
	}
	c, err := acquire(dev)
	if err != nil {
		return nil, err
	}

	lay := layout.Layout{
		Dim:        layout.Dim{W: cfg.Width, H: cfg.Height},
		PanelWidth: cfg.PanelWidth,
		Mapper:     layout.Mapper(cfg.ImageMapper),
		Serpentine: true,
	}

	d := &stripDriver{
		claim:  c,
		lay:    lay,
		stage:  image.NewNRGBA(image.Rect(0, 0, lay.Count(), 1)),
		scale:  float64(cfg.Brightness) / 254.0,
		width:  cfg.Width,
		height: cfg.Height,
	}

	port, err := spireg.Open(cfg.SPIDev)
	if err != nil {
		// No SPI port here; render to the console instead.
		d.drawer = screen.New(cfg.Width)
		return d, nil
	}

	freq := physic.Frequency(cfg.SPISpeedHz) * physic.Hertz
	if freq == 0 {
		// 3 SPI bits per NRZ bit at 800kHz, with headroom.
		freq = 2500 * physic.KiloHertz
	}
	strip, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: lay.Count(),
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		_ = port.Close()
		c.release()
		return nil, &InitError{Err: err}
	}
	d.drawer = strip
	d.port = port
	return d, nil
}

func (d *stripDriver) Submit(frame []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if len(frame) != d.width*d.height*3 {
		return fmt.Errorf("hub75: frame length %d does not match %dx%d", len(frame), d.width, d.height)
	}

	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			i := (y*d.width + x) * 3
			d.stage.SetNRGBA(d.lay.Index(x, y), 0, color.NRGBA{
				R: scale8(frame[i+0], d.scale),
				G: scale8(frame[i+1], d.scale),
				B: scale8(frame[i+2], d.scale),
				A: 0xFF,
			})
		}
	}
	return d.drawer.Draw(d.drawer.Bounds(), d.stage, image.Point{})
}

// Blank darkens the LEDs and the staging buffer. A strip has no refresh loop
// to wake; one zero frame on the wire is the whole operation.
func (d *stripDriver) Blank() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	for i := range d.stage.Pix {
		d.stage.Pix[i] = 0
	}
	return d.drawer.Draw(d.drawer.Bounds(), d.stage, image.Point{})
}

func (d *stripDriver) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	return d.drawer.Halt()
}

func (d *stripDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	err := d.drawer.Halt()
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
	}
	d.claim.release()
	return err
}

func (d *stripDriver) Width() int  { return d.width }
func (d *stripDriver) Height() int { return d.height }

func scale8(v byte, s float64) byte {
	return byte(float64(v) * s)
}
