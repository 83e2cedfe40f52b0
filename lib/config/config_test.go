package config

import (
	"errors"
	"testing"

	"github.com/colinrgodsey/cartesius/f64"
)

func TestConfig(t *testing.T) {
	conf, err := LoadConfig("../../config.hjson")

	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(conf.Bodies) != 4 || conf.Bodies[1].Name != "moon" {
		t.Fatalf("Missing bodies: %+v", conf.Bodies)
	}
	if conf.Bodies[1].Position[0] != 384400000 || conf.Bodies[3].Velocity[0] != -1502 {
		t.Fatalf("Bad body state: %+v", conf.Bodies)
	}
	if conf.Dt != 100 || conf.StepsPerFrame != 100 || conf.TrailLength != 4000 {
		t.Fatalf("Bad step settings: %+v", conf)
	}
	if !conf.CentroidRelativeTrails {
		t.Fatalf("Missing centroid-relative-trails")
	}
	if conf.ViewMax != (f64.Vec2{5e8, 5e8}) {
		t.Fatalf("Bad view-max %v", conf.ViewMax)
	}
	if conf.Frames() != 1000 {
		t.Fatalf("Expected 1000 frames, got %v", conf.Frames())
	}
}

func TestDefaults(t *testing.T) {
	conf, err := Parse([]byte(`{
		dt: 10
		bodies: [
			{
				mass: 1
				position: [0, 0]
				velocity: [0, 0]
			}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if conf.G != DefaultG || conf.StepsPerFrame != 1 || conf.Dimensions != 2 {
		t.Fatalf("Defaults not applied: %+v", conf)
	}
	if conf.ViewMax[0] <= 0 {
		t.Fatalf("View not fitted: %v", conf.ViewMax)
	}
	if conf.Frames() != 0 {
		t.Fatalf("No total time or frames should mean run forever")
	}
}

func TestValidate(t *testing.T) {
	base, err := Preset("earth-moon")
	if err != nil {
		t.Fatal(err)
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Preset failed validation: %v", err)
	}

	tests := map[string]func(c *Config){
		"zero dt":        func(c *Config) { c.Dt = 0 },
		"negative g":     func(c *Config) { c.G = -1 },
		"zero steps":     func(c *Config) { c.StepsPerFrame = 0 },
		"bad dims":       func(c *Config) { c.Dimensions = 4 },
		"no bodies":      func(c *Config) { c.Bodies = nil },
		"zero mass":      func(c *Config) { c.Bodies[1].Mass = 0 },
		"negative mass":  func(c *Config) { c.Bodies[0].Mass = -5 },
		"short position": func(c *Config) { c.Bodies[0].Position = []float64{1} },
		"long velocity":  func(c *Config) { c.Bodies[1].Velocity = []float64{1, 2, 3} },
		"negative time":  func(c *Config) { c.TotalTime = -1 },
	}
	for name, mod := range tests {
		c, _ := Preset("earth-moon")
		mod(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%v: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestPresets(t *testing.T) {
	names := PresetNames()
	if len(names) != 3 || names[0] != "earth-moon" || names[1] != "four-body" {
		t.Fatalf("Unexpected presets %v", names)
	}
	for _, name := range names {
		conf, err := Preset(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := conf.Validate(); err != nil {
			t.Fatalf("Preset %v is invalid: %v", name, err)
		}
	}

	a, _ := Preset("four-body")
	a.Bodies[0].Position[0] = 12
	b, _ := Preset("four-body")
	if b.Bodies[0].Position[0] != 0 {
		t.Fatalf("Preset was mutated through a copy")
	}

	if _, err := Preset("nope"); err == nil {
		t.Fatalf("Unknown preset should fail")
	}

	wp, _ := Preset("whale-petunia")
	if wp.Dimensions != 3 || wp.Frames() != 1000 || wp.TrailLength != 0 {
		t.Fatalf("Bad whale-petunia preset %+v", wp)
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte(`{ dt: [ }`)); err == nil {
		t.Fatalf("Bad hjson should fail")
	}
}

func TestExplicitZeroG(t *testing.T) {
	_, err := Parse([]byte(`{
		g: 0
		dt: 10
		bodies: [
			{
				mass: 1
				position: [0, 0]
				velocity: [0, 0]
			}
		]
	}`))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Explicit zero g should be rejected, got %v", err)
	}
}

func TestFrameCap(t *testing.T) {
	conf, _ := Preset("four-body")
	if conf.Frames() != 1000 {
		t.Fatalf("Expected 1000 frames, got %v", conf.Frames())
	}

	conf.TotalTime = 1e300
	if conf.Frames() != MaxFrames {
		t.Fatalf("Huge total-time should cap at %v frames, got %v", MaxFrames, conf.Frames())
	}

	conf.TotalTime = 1
	if conf.Frames() != 1 {
		t.Fatalf("A partial frame should round up, got %v", conf.Frames())
	}
}
