package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/dynamo"
)

const (
	DefaultFPS   = 60
	DefaultSteps = 600
	DefaultTheme = "pastel"
)

type Config struct {
	Bodies   int            `yaml:"bodies"`
	Radius   RangeConfig    `yaml:"radius"`
	Speed    RangeConfig    `yaml:"speed"`
	Viewport ViewportConfig `yaml:"viewport"`
	Visuals  int            `yaml:"visuals"`
	Seed     int64          `yaml:"seed"`
	FPS      int            `yaml:"fps"`
	Steps    int            `yaml:"steps"`
	Theme    string         `yaml:"theme"`
}

type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:   dynamo.DefaultBodyCount,
		Radius:   RangeConfig{Min: dynamo.DefaultRadiusMin, Max: dynamo.DefaultRadiusMax},
		Speed:    RangeConfig{Min: dynamo.DefaultSpeedMin, Max: dynamo.DefaultSpeedMax},
		Viewport: ViewportConfig{Width: dynamo.DefaultWidth, Height: dynamo.DefaultHeight},
		Visuals:  dynamo.DefaultVisuals,
		FPS:      DefaultFPS,
		Steps:    DefaultSteps,
		Theme:    DefaultTheme,
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file over an existing config.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// World converts the file layout into the construction record the
// simulator validates.
func (c *Config) World() dynamo.Config {
	return dynamo.Config{
		BodyCount: c.Bodies,
		RadiusMin: c.Radius.Min,
		RadiusMax: c.Radius.Max,
		Viewport:  dynamo.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height},
		SpeedMin:  c.Speed.Min,
		SpeedMax:  c.Speed.Max,
		Visuals:   c.Visuals,
		Seed:      c.Seed,
	}
}
