package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/colinrgodsey/cartesius/f64"
	"github.com/hjson/hjson-go"
)

// DefaultG is the gravitational constant used when none is configured
const DefaultG = 6.67430e-11

// MaxFrames caps the frame count derived from total-time
const MaxFrames = math.MaxInt32

// ErrInvalid is wrapped by all validation failures
var ErrInvalid = errors.New("config: invalid")

type Body struct {
	Name     string    `json:"name"`
	Mass     float64   `json:"mass"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
}

type Config struct {
	G                      float64  `json:"g"`
	Dt                     float64  `json:"dt"`
	StepsPerFrame          int      `json:"steps-per-frame"`
	TotalTime              float64  `json:"total-time"`
	FrameCount             int      `json:"frames"`
	TrailLength            int      `json:"trail-length"`
	Dimensions             int      `json:"dimensions"`
	CentroidRelativeTrails bool     `json:"centroid-relative-trails"`
	Bodies                 []Body   `json:"bodies"`
	ViewMax                f64.Vec2 `json:"view-max"`
}

// LoadConfig reads an HJSON config file, applying defaults and validating it.
func LoadConfig(path string) (conf Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	bytes, err := ioutil.ReadAll(f)
	if err != nil {
		return
	}
	return Parse(bytes)
}

// Parse decodes HJSON (or plain JSON) config data.
func Parse(data []byte) (conf Config, err error) {
	var mdat map[string]any
	if err = hjson.Unmarshal(data, &mdat); err != nil {
		err = fmt.Errorf("config: failed to parse hjson: %w", err)
		return
	}
	bytes, err := json.Marshal(mdat)
	if err != nil {
		return
	}
	if err = json.Unmarshal(bytes, &conf); err != nil {
		err = fmt.Errorf("config: failed to decode: %w", err)
		return
	}
	// only an absent g gets the default, an explicit zero is rejected
	if _, ok := mdat["g"]; !ok {
		conf.G = DefaultG
	}
	conf = conf.WithDefaults()
	err = conf.Validate()
	return
}

// WithDefaults returns a copy of c with unset values filled in.
// G has no default here, see Parse.
func (c Config) WithDefaults() Config {
	if c.StepsPerFrame == 0 {
		c.StepsPerFrame = 1
	}
	if c.Dimensions == 0 {
		c.Dimensions = 2
	}
	if c.ViewMax == (f64.Vec2{}) {
		c.ViewMax = c.fitView()
	}
	return c
}

// fitView picks render extents that contain every starting position
// with some margin.
func (c Config) fitView() (v f64.Vec2) {
	for _, b := range c.Bodies {
		for i := 0; i < 2 && i < len(b.Position); i++ {
			v[i] = math.Max(v[i], math.Abs(b.Position[i]))
		}
	}
	m := math.Max(v[0], v[1]) * 1.3
	if m == 0 {
		m = 1
	}
	return f64.Vec2{m, m}
}

// Validate checks all values are usable for a simulation.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %v", ErrInvalid, fmt.Sprintf(format, args...))
	}
	switch {
	case !(c.G > 0) || math.IsInf(c.G, 0):
		return bad("g must be positive, got %v", c.G)
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return bad("dt must be positive, got %v", c.Dt)
	case c.StepsPerFrame <= 0:
		return bad("steps-per-frame must be positive, got %v", c.StepsPerFrame)
	case c.TotalTime < 0 || math.IsNaN(c.TotalTime):
		return bad("total-time can't be negative, got %v", c.TotalTime)
	case c.FrameCount < 0:
		return bad("frames can't be negative, got %v", c.FrameCount)
	case c.Dimensions != 2 && c.Dimensions != 3:
		return bad("dimensions must be 2 or 3, got %v", c.Dimensions)
	case len(c.Bodies) == 0:
		return bad("no bodies")
	case !(c.ViewMax[0] > 0) || !(c.ViewMax[1] > 0):
		return bad("view-max must be positive, got %v", c.ViewMax)
	}
	for i, b := range c.Bodies {
		switch {
		case !(b.Mass > 0) || math.IsInf(b.Mass, 0):
			return bad("body %v (%v): mass must be positive, got %v", i, b.Name, b.Mass)
		case len(b.Position) != c.Dimensions:
			return bad("body %v (%v): position needs %v values", i, b.Name, c.Dimensions)
		case len(b.Velocity) != c.Dimensions:
			return bad("body %v (%v): velocity needs %v values", i, b.Name, c.Dimensions)
		}
	}
	return nil
}

// Frames returns the number of frames to run. An explicit frame count
// wins, otherwise enough frames are run to cover TotalTime, capped at
// MaxFrames. Zero means run until stopped.
//
// Each frame runs steps-per-frame steps, so total-time is divided by the
// frame time rather than by dt alone.
func (c Config) Frames() int {
	if c.FrameCount > 0 {
		return c.FrameCount
	}
	if c.TotalTime <= 0 {
		return 0
	}
	n := math.Ceil(c.TotalTime / c.FrameTime())
	if !(n < MaxFrames) {
		return MaxFrames
	}
	return int(n)
}

// FrameTime returns the simulated seconds covered by one frame
func (c Config) FrameTime() float64 {
	return c.Dt * float64(c.StepsPerFrame)
}
