package field

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/colinrgodsey/cartesius/f64"
	"github.com/colinrgodsey/cartesius/f64/filters"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colinrgodsey/orbitd/lib/render"
)

// CoarseStride is the pixel spacing of sampled potentials
const CoarseStride = 10

// ErrNoSources is returned when there is no mass to sample
var ErrNoSources = errors.New("field: no sources")

// Source is a point mass projected onto the plot plane.
type Source struct {
	Position f64.Vec2
	Mass     float64
}

// PotentialFunc maps a pixel position to a log scaled potential depth
type PotentialFunc f64.Function2D

/*
SampleGrid evaluates the potential of sources on a coarse pixel grid covering
plot, one stride past each edge. Values are log10 of the potential depth,
and every source is softened by half a stride so the grid never hits a
singularity.
*/
func SampleGrid(g float64, sources []Source, plot render.Plot) ([]Sample, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if plot.Size <= 0 || !(plot.View[0] > 0) || !(plot.View[1] > 0) {
		return nil, render.ErrBadView
	}
	soft := dist(plot.World(CoarseStride/2, 0), plot.World(0, 0))

	n := plot.Size/CoarseStride + 2
	samples := make([]Sample, 0, n*n)
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			x, y := float64(ix*CoarseStride), float64(iy*CoarseStride)
			pos := plot.World(x, y)

			var depth float64
			for _, s := range sources {
				r := math.Max(dist(s.Position, pos), soft)
				depth += g * s.Mass / r
			}
			samples = append(samples, Sample{x, y, math.Log10(depth)})
		}
	}
	return samples, nil
}

func dist(a, b f64.Vec2) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Generate interpolates coarse samples into a smooth potential.
func Generate(samples []Sample) (PotentialFunc, error) {
	var vs []f64.Vec3
	for _, s := range samples {
		vs = append(vs, s.Vec3())
	}
	out, err := f64.Grid2D(vs, filters.CatmullRom)
	return PotentialFunc(out), err
}

// Draw renders interp over a size x size image, deep wells bright.
func Draw(interp PotentialFunc, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, render.ErrBadView
	}
	one := f64.Vec2{1, 1}
	positions := f64.Grid2DPositions(one.Mul(0.5), one, f64.Vec2{float64(size), float64(size)})

	var samples []f64.Vec3
	var max, min float64
	var i int
	for sample := range f64.Function2D(interp).Multi(positions) {
		z := sample[2]
		if z > max || i == 0 {
			max = z
		}
		if z < min || i == 0 {
			min = z
		}
		samples = append(samples, sample)
		i++
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for _, sample := range samples {
		var z float64
		if max > min {
			z = (sample[2] - min) / (max - min)
		}
		r, g, b := colorful.Hsl(240*(1-z), 1, 0.1+0.5*z).Clamped().RGB255()
		img.Set(int(sample[0]), int(sample[1]), color.RGBA{r, g, b, 255})
	}
	return img, nil
}

// SavePNG samples, interpolates and draws the potential of sources
// into a new PNG file at path.
func SavePNG(path string, g float64, sources []Source, plot render.Plot) ([]Sample, error) {
	samples, err := SampleGrid(g, sources, plot)
	if err != nil {
		return nil, err
	}
	return samples, RenderSamples(path, samples, plot.Size)
}

// RenderSamples interpolates previously taken samples and draws them
// into a new size x size PNG file at path.
func RenderSamples(path string, samples []Sample, size int) error {
	interp, err := Generate(samples)
	if err != nil {
		return err
	}
	img, err := Draw(interp, size)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
