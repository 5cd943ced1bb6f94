package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fernwerk/waypost/internal/geo"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Units != "mi" {
		t.Errorf("default units %q, want mi", cfg.Units)
	}
	if cfg.Dimensions.PostHeight != 180 {
		t.Errorf("default post height %g, want 180", cfg.Dimensions.PostHeight)
	}
	if cfg.Output.Dir == "" || cfg.Output.Prefix == "" {
		t.Error("default output settings empty")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypost.yaml")
	doc := `
home:
  name: Cabin
  latitude: 47.6
  longitude: -122.3
locations:
  - name: Summit
    latitude: 46.85
    longitude: -121.76
units: km
dimensions:
  post_height: 120
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Home.Name != "Cabin" || cfg.Home.Lat != 47.6 {
		t.Errorf("home not loaded: %+v", cfg.Home)
	}
	if len(cfg.Locations) != 1 || cfg.Locations[0].Name != "Summit" {
		t.Fatalf("locations not loaded: %+v", cfg.Locations)
	}
	if cfg.Dimensions.PostHeight != 120 {
		t.Errorf("post height %g, want file value 120", cfg.Dimensions.PostHeight)
	}
	// Untouched keys keep their defaults.
	if cfg.Dimensions.PostRadius != 10 {
		t.Errorf("post radius %g, want default 10", cfg.Dimensions.PostRadius)
	}
	if cfg.Unit() != geo.Kilometers {
		t.Errorf("unit %q, want km", cfg.Unit())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file loaded without error")
	}
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Errorf("empty path should return defaults, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Locations = []Location{{Name: "Summit", Point: geo.Point{Lat: 46.85, Lon: -121.76}}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	for name, mutate := range map[string]func(*Config){
		"no locations": func(c *Config) { c.Locations = nil },
		"bad units":    func(c *Config) { c.Units = "leagues" },
		"unnamed":      func(c *Config) { c.Locations[0].Name = "" },
		"negative pad": func(c *Config) { c.Spacers = -1 },
	} {
		cfg := Default()
		cfg.Locations = []Location{{Name: "Summit"}}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}
