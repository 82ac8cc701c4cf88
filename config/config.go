// Package config loads the map view settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/eak1mov/go-libfragments/layer"
	"github.com/eak1mov/go-libfragments/tile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("libfragments: invalid config")

type Config struct {
	Map        MapConfig        `toml:"map"`
	Generation GenerationConfig `toml:"generation"`
	Logging    LoggingConfig    `toml:"logging"`
	Layers     []layer.Spec     `toml:"layers"`
	// LayersFile, when set, names a YAML layer list used instead of Layers.
	LayersFile string `toml:"layers_file"`
}

type MapConfig struct {
	FragmentSize int64   `toml:"fragment_size"` // world units per fragment edge
	ViewMargin   int64   `toml:"view_margin"`   // fragments kept resident around the view
	PickRadius   float64 `toml:"pick_radius"`   // world units, exclusive
}

type GenerationConfig struct {
	Workers       int `toml:"workers"`
	QueueCapacity int `toml:"queue_capacity"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	cfg.Layers = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if cfg.Layers == nil {
		cfg.Layers = layer.DefaultSpecs()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Map: MapConfig{
			FragmentSize: int64(tile.DefaultSize),
			ViewMargin:   1,
			PickRadius:   32,
		},
		Generation: GenerationConfig{
			Workers:       4,
			QueueCapacity: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Layers: layer.DefaultSpecs(),
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Map.FragmentSize <= 0:
		return fmt.Errorf("%w: fragment_size %d", ErrInvalidConfig, c.Map.FragmentSize)
	case c.Map.ViewMargin < 0:
		return fmt.Errorf("%w: view_margin %d", ErrInvalidConfig, c.Map.ViewMargin)
	case !(c.Map.PickRadius >= 0):
		return fmt.Errorf("%w: pick_radius %v", ErrInvalidConfig, c.Map.PickRadius)
	case c.Generation.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Generation.Workers)
	case c.Generation.QueueCapacity < 0:
		return fmt.Errorf("%w: queue_capacity %d", ErrInvalidConfig, c.Generation.QueueCapacity)
	case c.Logging.Format != "json" && c.Logging.Format != "console":
		return fmt.Errorf("%w: logging format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := layer.NewRegistry(c.Layers...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) FragmentSize() tile.Size {
	return tile.Size(c.Map.FragmentSize)
}

// Registry builds a fresh layer registry with default visibility.
func (c *Config) Registry() (*layer.Registry, error) {
	if c.LayersFile == "" {
		return layer.NewRegistry(c.Layers...)
	}
	data, err := os.ReadFile(c.LayersFile)
	if err != nil {
		return nil, fmt.Errorf("read layers %s: %w", c.LayersFile, err)
	}
	r, err := layer.LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("layers %s: %w", c.LayersFile, err)
	}
	return r, nil
}

// Logger builds a logger writing to stderr.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	var zcfg zap.Config
	if c.Logging.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
