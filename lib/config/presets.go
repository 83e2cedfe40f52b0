package config

import (
	"fmt"

	"github.com/colinrgodsey/cartesius/f64"
	"github.com/elliotchance/orderedmap/v2"
)

var presets = orderedmap.NewOrderedMap[string, Config]()

func init() {
	presets.Set("earth-moon", Config{
		G:             DefaultG,
		Dt:            600,
		StepsPerFrame: 100,
		TotalTime:     10000000,
		TrailLength:   5000,
		Dimensions:    2,
		Bodies: []Body{
			{"earth", 5.972e24, []float64{0, 0}, []float64{0, 0}},
			{"moon", 7.348e22, []float64{384400000, 0}, []float64{0, 1022}},
		},
		ViewMax: f64.Vec2{5e8, 5e8},
	})

	presets.Set("four-body", Config{
		G:                      DefaultG,
		Dt:                     100,
		StepsPerFrame:          100,
		TotalTime:              10000000,
		TrailLength:            4000,
		Dimensions:             2,
		CentroidRelativeTrails: true,
		Bodies: []Body{
			{"earth", 5.972e24, []float64{0, 0}, []float64{0, 0}},
			{"moon", 7.348e22, []float64{384400000, 0}, []float64{0, 1032}},
			{"inner", 7.348e22, []float64{144400000, 0}, []float64{0, 2000}},
			{"polar", 3.348e22, []float64{0, 84400000}, []float64{-1502, 0}},
		},
		ViewMax: f64.Vec2{5e8, 5e8},
	})

	// tiny masses, the bodies barely interact
	presets.Set("whale-petunia", Config{
		G:             DefaultG,
		Dt:            1000,
		StepsPerFrame: 1,
		FrameCount:    1000,
		Dimensions:    3,
		Bodies: []Body{
			{"whale", 1000000000, []float64{0, 0, 0}, []float64{0, 0, 0}},
			{"petunia", 500000000, []float64{100, 0, 0}, []float64{0, 1, 0}},
		},
		ViewMax: f64.Vec2{200, 200},
	})
}

// PresetNames returns the names of all built-in scenarios in
// registration order.
func PresetNames() []string {
	return presets.Keys()
}

// Preset returns a copy of the named built-in scenario with
// defaults applied.
func Preset(name string) (Config, error) {
	conf, ok := presets.Get(name)
	if !ok {
		return Config{}, fmt.Errorf("config: unknown preset %q", name)
	}
	conf.Bodies = append([]Body(nil), conf.Bodies...)
	for i, b := range conf.Bodies {
		conf.Bodies[i].Position = append([]float64(nil), b.Position...)
		conf.Bodies[i].Velocity = append([]float64(nil), b.Velocity...)
	}
	return conf.WithDefaults(), nil
}
