package field

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/colinrgodsey/cartesius/f64"
)

// ErrNoSamples is returned when a sample file holds no samples
var ErrNoSamples = errors.New("field: no samples")

// Sample is the potential at one coarse grid point, in pixel coordinates.
type Sample struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Potential float64 `json:"potential"`
}

func (s Sample) Vec3() f64.Vec3 {
	return f64.Vec3{s.X, s.Y, s.Potential}
}

// LoadSampleFile reads samples written by SaveSampleFile.
func LoadSampleFile(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("field: bad sample file %v: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoSamples, path)
	}
	return samples, nil
}

// SaveSampleFile writes samples as a JSON array of {x, y, potential}.
func SaveSampleFile(path string, samples []Sample) error {
	data, err := json.Marshal(samples)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
