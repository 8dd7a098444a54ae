// Package controller owns the pixel surface and the background render loop
// that pushes it to the hub75 driver at a fixed cadence.
package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/hub75ctl/internal/diagnostics"
	"github.com/coreman2200/hub75ctl/internal/hub75"
	"github.com/coreman2200/hub75ctl/internal/surface"
)

// DefaultTick is the render loop interval, ~60Hz. This clock is independent
// of the driver's configured hardware fps; the two are deliberately not
// unified.
const DefaultTick = 16 * time.Millisecond

type runState int

const (
	stateStopped runState = iota
	stateStarting
	stateRunning
)

// Option configures a Controller.
type Option func(*Controller)

// WithTick overrides the render loop interval.
func WithTick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithLogger sets the logger used by the render loop.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDriver injects an already-open driver instead of opening one from the
// config on Start.
func WithDriver(d hub75.Driver) Option {
	return func(c *Controller) { c.drv = d }
}

// WithObserver registers a sink for per-tick diagnostics. The render loop has
// no caller to return errors to; this is the only place submit failures
// surface.
func WithObserver(fn func(diagnostics.Diagnostic)) Option {
	return func(c *Controller) { c.observe = fn }
}

// WithFrameSink registers a best-effort tap that receives every successfully
// submitted frame. The slice is only valid for the duration of the call.
func WithFrameSink(fn func(frame []byte)) Option {
	return func(c *Controller) { c.sink = fn }
}

// Controller is the double-buffered render controller. Callers write pixels
// into its surface at any time; while running, a single background worker
// snapshots the surface every tick and submits it to the driver.
type Controller struct {
	cfg  hub75.Config
	surf *surface.Surface
	tick time.Duration
	log  zerolog.Logger

	observe func(diagnostics.Diagnostic)
	sink    func([]byte)

	mu     sync.Mutex
	state  runState
	drv    hub75.Driver
	cancel chan struct{}
	done   chan struct{}
	closed bool

	meter meter
}

// New builds a stopped controller for the given driver configuration.
// Geometry must be positive here since it sizes the surface; everything else
// is validated when the first Start opens the driver, so a bad config is
// reported there and Start can be retried after fixing it.
func New(cfg hub75.Config, opts ...Option) (*Controller, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &hub75.InitError{Err: fmt.Errorf("invalid geometry %dx%d", cfg.Width, cfg.Height)}
	}
	c := &Controller{
		cfg:  cfg,
		surf: surface.New(cfg.Width, cfg.Height),
		tick: DefaultTick,
		log:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Controller) Width() int  { return c.surf.Width() }
func (c *Controller) Height() int { return c.surf.Height() }

// SetPixel writes one pixel; out-of-bounds coordinates are dropped.
func (c *Controller) SetPixel(x, y int, r, g, b byte) { c.surf.SetPixel(x, y, r, g, b) }

// SetFrame bulk-replaces the surface. Fails with surface.ErrShapeMismatch on
// any size mismatch without touching the surface.
func (c *Controller) SetFrame(frame []byte) error { return c.surf.SetFrame(frame) }

// Clear zeroes the surface. If the driver is open but the loop is stopped,
// its shadow buffer is blanked too, so no stale content resurfaces on the
// next Start. Blank, not Submit: a submit would wake hardware refresh on
// backends that pace their own output.
func (c *Controller) Clear() {
	c.surf.Clear()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == stateStopped && c.drv != nil {
		if err := c.drv.Blank(); err != nil {
			c.log.Warn().Err(err).Msg("driver blank failed")
		}
	}
}

// IsRunning reports whether the render loop is live.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateRunning
}

// FPS returns the measured frames-per-second pushed to the driver.
func (c *Controller) FPS() float64 { return c.meter.rate() }

// Start brings up the driver if needed and spawns the render loop. Calling
// Start on a running controller is a no-op. On driver init failure the
// controller stays stopped and Start can be retried.
func (c *Controller) Start() error {
	c.mu.Lock()
	switch c.state {
	case stateRunning, stateStarting:
		c.mu.Unlock()
		return nil
	}
	if c.closed {
		c.mu.Unlock()
		return hub75.ErrClosed
	}
	c.state = stateStarting
	drv := c.drv
	c.mu.Unlock()

	// Driver bring-up can touch real hardware; do it outside the lock. The
	// Starting state keeps a second Start out until we settle.
	var err error
	opened := false
	if drv == nil {
		drv, err = hub75.Open(c.cfg)
		opened = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = stateStopped
		return err
	}
	if c.closed {
		// A Close landed while the lock was down. The controller must end
		// this call with nothing alive: release the driver we just opened
		// (an injected one was already closed by Close) and stay stopped.
		c.state = stateStopped
		if opened && drv != nil {
			_ = drv.Close()
		}
		return hub75.ErrClosed
	}
	c.drv = drv
	c.cancel = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(drv, c.cancel, c.done)
	c.state = stateRunning
	c.log.Info().Int("width", c.surf.Width()).Int("height", c.surf.Height()).
		Dur("tick", c.tick).Msg("render loop started")
	return nil
}

// Stop cancels the render loop, waits for it to finish its current tick and
// exit, then halts hardware output. A stopped controller stays stopped; no
// frame is submitted after Stop returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != stateRunning {
		return
	}
	close(c.cancel)
	<-c.done
	if err := c.drv.Halt(); err != nil {
		c.log.Warn().Err(err).Msg("driver halt failed")
	}
	c.state = stateStopped
	c.log.Info().Msg("render loop stopped")
}

// Close stops the loop and releases the driver. The closed flag is raised
// before anything else so a Start racing this call cannot bring the loop up
// afterwards; the loop is then joined before the driver handle goes away, so
// the worker can never touch freed hardware state. Safe to call twice.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drv == nil {
		return nil
	}
	err := c.drv.Close()
	c.drv = nil
	return err
}

// run is the render loop. One instance is alive at a time; it owns drv until
// it returns. Each tick is atomic: once a snapshot is taken the submit
// completes before cancellation is observed.
func (c *Controller) run(drv hub75.Driver, cancel <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	buf := make([]byte, c.surf.Size())
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			buf = c.surf.Snapshot(buf)
			if err := drv.Submit(buf); err != nil {
				// A missed frame must never kill the loop; log, report,
				// try again next tick.
				c.log.Warn().Err(err).Msg("frame submit failed")
				if c.observe != nil {
					c.observe(diagnostics.Diagnostic{
						Severity: diagnostics.Warn,
						Code:     "SUBMIT.FAIL",
						Summary:  "frame submit failed",
						Detail:   err.Error(),
					})
				}
				continue
			}
			c.meter.frame(time.Now())
			if c.sink != nil {
				c.sink(buf)
			}
		}
	}
}
