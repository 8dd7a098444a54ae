package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/hub75ctl/internal/hub75"
)

// Config is the daemon configuration file. Driver settings are forwarded to
// hub75.Open untouched.
type Config struct {
	Driver hub75.Config `yaml:"driver"`

	// Render loop interval; zero means the default ~16ms.
	TickMs int `yaml:"tick_ms"`

	// HTTP listen address for the preview/diagnostics server; empty
	// disables it.
	Addr string `yaml:"addr"`

	// Startup pattern name; empty leaves the panel dark until a client
	// writes pixels.
	Pattern string `yaml:"pattern"`
}

func (c *Config) Tick() time.Duration {
	if c.TickMs <= 0 {
		return 0
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
