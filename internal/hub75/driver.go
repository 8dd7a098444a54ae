// Package hub75 is the boundary to the hardware that actually drives the
// panel. The controller only ever sees the Driver interface; bit-plane
// encoding, GPIO timing, gamma and tone mapping all live behind it.
package hub75

import (
	"errors"
	"fmt"
)

// Errors returned by the driver boundary.
var (
	// ErrClaimed means the underlying hardware resource is already owned by
	// a live handle. A panel cannot be shared between two controllers.
	ErrClaimed = errors.New("hub75: device already claimed")

	// ErrClosed is returned when a handle is used after Close.
	ErrClosed = errors.New("hub75: driver closed")
)

// InitError wraps any failure to bring up the external driver. The controller
// surfaces it synchronously from Start and stays stopped and retryable.
type InitError struct {
	Err error
}

func (e *InitError) Error() string { return fmt.Sprintf("hub75: driver init: %v", e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

func initErrorf(format string, args ...any) error {
	return &InitError{Err: fmt.Errorf(format, args...)}
}

// Driver is one output sink for RGB frames.
//
// Submit pushes one full frame; len(frame) must be Width()*Height()*3. A
// failed Submit is fatal for that frame only, the caller is expected to try
// again next tick. Blank zeroes any driver-side shadow buffer without waking
// hardware refresh, so no stale frame survives into the next Submit. Halt
// stops hardware output without releasing the device. Close releases
// everything and must be called at most once.
type Driver interface {
	Submit(frame []byte) error
	Blank() error
	Halt() error
	Close() error
	Width() int
	Height() int
}

// Open initializes a driver from cfg. The backend is chosen by cfg.Backend:
// "gpio" binds the external hub75 library, "strip" drives chained WS2812
// panels over SPI, "sim" is a no-op sink for headless runs. Any invalid
// configuration combination fails with *InitError before hardware is touched.
func Open(cfg Config) (Driver, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendGPIO:
		return openGPIO(cfg)
	case BackendStrip:
		return openStrip(cfg)
	case BackendSim:
		return openSim(cfg)
	default:
		return nil, initErrorf("unknown backend %q", cfg.Backend)
	}
}

// simDriver swallows frames. Used for headless bring-up and by the daemon's
// sim backend; tests use the richer counting driver in internal/driver/fake.
type simDriver struct {
	claim  *claim
	width  int
	height int
}

func openSim(cfg Config) (Driver, error) {
	c, err := acquire("sim")
	if err != nil {
		return nil, err
	}
	return &simDriver{claim: c, width: cfg.Width, height: cfg.Height}, nil
}

func (d *simDriver) Submit(frame []byte) error {
	if d.claim.released() {
		return ErrClosed
	}
	if len(frame) != d.width*d.height*3 {
		return fmt.Errorf("hub75: frame length %d does not match %dx%d", len(frame), d.width, d.height)
	}
	return nil
}

func (d *simDriver) Blank() error { return nil }

func (d *simDriver) Halt() error { return nil }

func (d *simDriver) Close() error {
	d.claim.release()
	return nil
}

func (d *simDriver) Width() int  { return d.width }
func (d *simDriver) Height() int { return d.height }
