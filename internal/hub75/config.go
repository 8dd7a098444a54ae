package hub75

// Backend selects which hardware path Open takes.
type Backend string

const (
	BackendGPIO  Backend = "gpio"  // external rpihub75 library over GPIO
	BackendStrip Backend = "strip" // chained WS2812 panels over SPI
	BackendSim   Backend = "sim"   // no hardware output
)

// Config is the immutable configuration snapshot handed to Open. Everything
// beyond geometry is forwarded to the backend as-is; color science happens
// on the other side of the boundary.
type Config struct {
	Backend Backend `yaml:"backend"`

	// Total image geometry (required).
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Brightness int     `yaml:"brightness"`
	FPS        int     `yaml:"fps"`
	BitDepth   int     `yaml:"bit_depth"`
	Gamma      float64 `yaml:"gamma"`
	ToneMapper string  `yaml:"tone_mapper"`

	// Physical panel geometry; defaults to the full image.
	PanelWidth  int    `yaml:"panel_width"`
	PanelHeight int    `yaml:"panel_height"`
	PixelOrder  string `yaml:"pixel_order"`
	NumPorts    int    `yaml:"num_ports"`
	NumChains   int    `yaml:"num_chains"`

	DitherLevel      int    `yaml:"dither_level"`
	MotionBlurFrames int    `yaml:"motion_blur_frames"`
	ImageMapper      string `yaml:"image_mapper"`
	ShaderFile       string `yaml:"shader_file,omitempty"`

	// Strip backend only.
	SPIDev     string `yaml:"spi_dev,omitempty"`
	SPISpeedHz int    `yaml:"spi_speed_hz,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSim
	}
	if c.Brightness == 0 {
		c.Brightness = 50
	}
	if c.FPS == 0 {
		c.FPS = 60
	}
	if c.BitDepth == 0 {
		c.BitDepth = 8
	}
	if c.Gamma == 0 {
		c.Gamma = 2.2
	}
	if c.ToneMapper == "" {
		c.ToneMapper = "aces"
	}
	if c.PanelWidth == 0 {
		c.PanelWidth = c.Width
	}
	if c.PanelHeight == 0 {
		c.PanelHeight = c.Height
	}
	if c.PixelOrder == "" {
		c.PixelOrder = "RGB"
	}
	if c.NumPorts == 0 {
		c.NumPorts = 1
	}
	if c.NumChains == 0 {
		c.NumChains = 1
	}
	if c.ImageMapper == "" {
		c.ImageMapper = "u"
	}
}

var (
	validPanelWidths  = map[int]bool{16: true, 32: true, 64: true, 128: true}
	validPanelHeights = map[int]bool{16: true, 32: true, 64: true}
	validPixelOrders  = map[string]bool{"RGB": true, "RBG": true, "BGR": true}
	validMappers      = map[string]bool{"u": true, "mirror": true, "flip": true, "mirror_flip": true}
)

// Validate checks the whole combination. Ranges follow the external library's
// accepted command line; anything it would reject is caught here first.
func (c *Config) Validate() error {
	if c.Width < 16 || c.Width > 512 {
		return initErrorf("width must be 16-512, got %d", c.Width)
	}
	if c.Height < 16 || c.Height > 512 {
		return initErrorf("height must be 16-512, got %d", c.Height)
	}
	if !validPanelWidths[c.PanelWidth] {
		return initErrorf("panel width must be one of 16/32/64/128, got %d", c.PanelWidth)
	}
	if !validPanelHeights[c.PanelHeight] {
		return initErrorf("panel height must be one of 16/32/64, got %d", c.PanelHeight)
	}
	if !validPixelOrders[c.PixelOrder] {
		return initErrorf("pixel order must be RGB, RBG or BGR, got %q", c.PixelOrder)
	}
	if c.FPS < 1 || c.FPS > 255 {
		return initErrorf("fps must be 1-255, got %d", c.FPS)
	}
	if c.NumPorts < 1 || c.NumPorts > 3 {
		return initErrorf("num ports must be 1-3, got %d", c.NumPorts)
	}
	if c.NumChains < 1 || c.NumChains > 16 {
		return initErrorf("num chains must be 1-16, got %d", c.NumChains)
	}
	if c.Brightness < 0 || c.Brightness > 254 {
		return initErrorf("brightness must be 0-254, got %d", c.Brightness)
	}
	if c.Gamma < 1.0 || c.Gamma > 2.8 {
		return initErrorf("gamma must be 1.0-2.8, got %g", c.Gamma)
	}
	if c.BitDepth < 2 || c.BitDepth > 64 {
		return initErrorf("bit depth must be 2-64, got %d", c.BitDepth)
	}
	if c.DitherLevel < 0 || c.DitherLevel > 10 {
		return initErrorf("dither level must be 0-10, got %d", c.DitherLevel)
	}
	if c.MotionBlurFrames < 0 || c.MotionBlurFrames > 32 {
		return initErrorf("motion blur frames must be 0-32, got %d", c.MotionBlurFrames)
	}
	if !validMappers[c.ImageMapper] {
		return initErrorf("image mapper must be u, mirror, flip or mirror_flip, got %q", c.ImageMapper)
	}
	return nil
}
