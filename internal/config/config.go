// Package config handles loading and defaulting of the generator
// run configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/fernwerk/waypost/internal/geo"
	"github.com/fernwerk/waypost/sign"
)

// Location is a named place a sign points at.
type Location struct {
	Name      string `yaml:"name"`
	geo.Point `yaml:",inline"`
}

// Output holds file output settings.
type Output struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	// Preview also renders a PNG next to every exported STL.
	Preview bool `yaml:"preview"`
}

// Logging holds logging settings.
type Logging struct {
	Level string `yaml:"level"`
	// File enables rotated log file output in addition to the console.
	File string `yaml:"file"`
}

// Config is one full generator run: where the sign stands, what it
// points at, and every dimension of the printed parts.
type Config struct {
	Home       Location      `yaml:"home"`
	Locations  []Location    `yaml:"locations"`
	Units      string        `yaml:"units"`
	Spacers    int           `yaml:"spacers"`
	FontPath   string        `yaml:"font_path"`
	Output     Output        `yaml:"output"`
	Dimensions sign.Config   `yaml:"dimensions"`
	Logging    Logging       `yaml:"logging"`
}

// Default returns a Config with sensible default values. Home and
// Locations are intentionally empty: they have no meaningful default.
func Default() *Config {
	return &Config{
		Home:  Location{Name: "Home"},
		Units: string(geo.Miles),
		Output: Output{
			Dir:    "output",
			Prefix: "waypost",
		},
		Dimensions: sign.DefaultConfig(),
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate reports the first problem that would make a run fail late.
func (c *Config) Validate() error {
	if len(c.Locations) == 0 {
		return errors.New("config: at least one location is required")
	}
	if _, err := geo.ParseUnit(c.Units); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for i, loc := range c.Locations {
		if loc.Name == "" {
			return fmt.Errorf("config: location %d has no name", i+1)
		}
	}
	if c.Spacers < 0 {
		return fmt.Errorf("config: spacers must not be negative, got %d", c.Spacers)
	}
	return nil
}

// Unit returns the parsed distance unit. Call Validate first.
func (c *Config) Unit() geo.Unit {
	u, err := geo.ParseUnit(c.Units)
	if err != nil {
		return geo.Miles
	}
	return u
}
