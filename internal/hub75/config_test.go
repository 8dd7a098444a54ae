package hub75

import (
	"errors"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Config{Width: 64, Height: 32}
	c.applyDefaults()

	if c.Backend != BackendSim {
		t.Fatalf("default backend = %q, want sim", c.Backend)
	}
	if c.Brightness != 50 || c.FPS != 60 || c.BitDepth != 8 {
		t.Fatalf("unexpected defaults: brightness=%d fps=%d bit_depth=%d", c.Brightness, c.FPS, c.BitDepth)
	}
	if c.Gamma != 2.2 || c.ToneMapper != "aces" {
		t.Fatalf("unexpected color defaults: gamma=%g tone_mapper=%q", c.Gamma, c.ToneMapper)
	}
	if c.PanelWidth != 64 || c.PanelHeight != 32 {
		t.Fatalf("panel should default to full image, got %dx%d", c.PanelWidth, c.PanelHeight)
	}
	if c.PixelOrder != "RGB" || c.NumPorts != 1 || c.NumChains != 1 || c.ImageMapper != "u" {
		t.Fatalf("unexpected topology defaults: %+v", c)
	}
}

func TestValidateRejectsBadCombinations(t *testing.T) {
	base := func() Config {
		c := Config{Width: 64, Height: 32}
		c.applyDefaults()
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"width too small", func(c *Config) { c.Width = 8 }},
		{"width too large", func(c *Config) { c.Width = 1024 }},
		{"height too small", func(c *Config) { c.Height = 4 }},
		{"bad panel width", func(c *Config) { c.PanelWidth = 48 }},
		{"bad panel height", func(c *Config) { c.PanelHeight = 128 }},
		{"bad pixel order", func(c *Config) { c.PixelOrder = "GRB" }},
		{"fps zero", func(c *Config) { c.FPS = -1 }},
		{"fps too high", func(c *Config) { c.FPS = 300 }},
		{"too many ports", func(c *Config) { c.NumPorts = 4 }},
		{"too many chains", func(c *Config) { c.NumChains = 17 }},
		{"brightness too high", func(c *Config) { c.Brightness = 255 }},
		{"gamma too low", func(c *Config) { c.Gamma = 0.5 }},
		{"gamma too high", func(c *Config) { c.Gamma = 3.0 }},
		{"bit depth too high", func(c *Config) { c.BitDepth = 65 }},
		{"bad dither", func(c *Config) { c.DitherLevel = 11 }},
		{"bad motion blur", func(c *Config) { c.MotionBlurFrames = 33 }},
		{"bad mapper", func(c *Config) { c.ImageMapper = "rotate" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var initErr *InitError
			if !errors.As(err, &initErr) {
				t.Fatalf("error %v is not an InitError", err)
			}
		})
	}

	c := base()
	if err := c.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Config{Backend: "dmx", Width: 64, Height: 32})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
