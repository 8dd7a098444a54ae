//go:build !linux || !cgo

package hub75

func openGPIO(cfg Config) (Driver, error) {
	return nil, initErrorf("gpio backend not supported on this platform")
}
