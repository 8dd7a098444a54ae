//go:build linux && cgo

package hub75

/*
#cgo LDFLAGS: -lrpihub75
#include <stdlib.h>
#include <stdint.h>
#include <string.h>
#include <rpihub75/rpihub75.h>
#include <rpihub75/util.h>
#include <rpihub75/pixels.h>
*/
import "C"
import (
	"fmt"
	"strconv"
	"sync"
	"unsafe"
)

// gpioDriver binds the external rpihub75 library. The library owns all GPIO
// bit-plane timing; we configure a scene through its argv parser, copy frames
// into the scene image and let its refresh loop clock the panel.
type gpioDriver struct {
	claim *claim

	mu          sync.Mutex
	scene       *C.scene_info
	width       int
	height      int
	refreshDone chan struct{} // nil when the library refresh loop is down
}

func openGPIO(cfg Config) (Driver, error) {
	c, err := acquire("gpio")
	if err != nil {
		return nil, err
	}

	// The library is configured through its command line parser, same as the
	// hub75 demo binaries.
	args := []string{
		"hub75ctl",
		"-x", strconv.Itoa(cfg.Width),
		"-y", strconv.Itoa(cfg.Height),
		"-w", strconv.Itoa(cfg.PanelWidth),
		"-h", strconv.Itoa(cfg.PanelHeight),
		"-O", cfg.PixelOrder,
		"-f", strconv.Itoa(cfg.FPS),
		"-p", strconv.Itoa(cfg.NumPorts),
		"-c", strconv.Itoa(cfg.NumChains),
		"-d", strconv.Itoa(cfg.BitDepth),
		"-g", strconv.FormatFloat(cfg.Gamma, 'f', 2, 64),
		"-b", strconv.Itoa(cfg.Brightness),
		"-l", strconv.Itoa(cfg.DitherLevel),
		"-m", strconv.Itoa(cfg.MotionBlurFrames),
		"-i", cfg.ImageMapper,
		"-t", cfg.ToneMapper,
	}
	if cfg.ShaderFile != "" {
		args = append(args, "-s", cfg.ShaderFile)
	}

	argv := make([]*C.char, len(args)+1)
	for i, a := range args {
		argv[i] = C.CString(a)
	}
	defer func() {
		for _, p := range argv {
			if p != nil {
				C.free(unsafe.Pointer(p))
			}
		}
	}()

	scene := C.default_scene(C.int(len(args)), &argv[0])
	if scene == nil {
		c.release()
		return nil, initErrorf("rpihub75 rejected configuration")
	}
	if scene.image == nil {
		scene.image = (*C.uint8_t)(C.calloc(C.size_t(cfg.Width*cfg.Height), C.size_t(scene.stride)))
		if scene.image == nil {
			C.free(unsafe.Pointer(scene))
			c.release()
			return nil, initErrorf("scene image alloc failed")
		}
	}

	return &gpioDriver{
		claim:  c,
		scene:  scene,
		width:  cfg.Width,
		height: cfg.Height,
	}, nil
}

func (d *gpioDriver) Submit(frame []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scene == nil {
		return ErrClosed
	}
	if len(frame) != d.width*d.height*3 {
		return fmt.Errorf("hub75: frame length %d does not match %dx%d", len(frame), d.width, d.height)
	}

	C.memcpy(unsafe.Pointer(d.scene.image), unsafe.Pointer(&frame[0]), C.size_t(len(frame)))

	// Hardware refresh runs on the library's own loop; bring it up on the
	// first frame after Open or Halt, and only once the image holds that
	// frame so the loop can never map stale bytes.
	if d.refreshDone == nil {
		d.scene.do_render = true
		done := make(chan struct{})
		scene := d.scene
		go func() {
			C.render_forever(scene)
			close(done)
		}()
		d.refreshDone = done
	}

	C.calculate_fps(d.scene.fps, false)
	return nil
}

// Blank memsets the scene image directly; unlike Submit this never restarts
// the library refresh loop, so clearing a stopped panel keeps it stopped.
func (d *gpioDriver) Blank() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scene == nil {
		return ErrClosed
	}
	C.memset(unsafe.Pointer(d.scene.image), 0, C.size_t(d.width*d.height*3))
	return nil
}

func (d *gpioDriver) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scene == nil {
		return ErrClosed
	}
	// render_forever polls do_render and blanks the panel on its way out;
	// wait for it so a later Submit cannot race a dying refresh loop.
	d.haltLocked()
	return nil
}

func (d *gpioDriver) haltLocked() {
	if d.refreshDone == nil {
		return
	}
	d.scene.do_render = false
	<-d.refreshDone
	d.refreshDone = nil
}

func (d *gpioDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scene == nil {
		return nil
	}
	d.haltLocked()
	if d.scene.image != nil {
		C.free(unsafe.Pointer(d.scene.image))
	}
	C.free(unsafe.Pointer(d.scene))
	d.scene = nil
	d.claim.release()
	return nil
}

func (d *gpioDriver) Width() int  { return d.width }
func (d *gpioDriver) Height() int { return d.height }
