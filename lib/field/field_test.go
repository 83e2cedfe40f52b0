package field

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/colinrgodsey/cartesius/f64"

	"github.com/colinrgodsey/orbitd/lib/render"
)

var testPlot = render.Plot{View: f64.Vec2{100, 100}, Size: 200}

func TestSampleGrid(t *testing.T) {
	sources := []Source{
		{f64.Vec2{0, 0}, 1e10},
		{f64.Vec2{50, 50}, 1e8},
	}
	samples, err := SampleGrid(1, sources, testPlot)
	if err != nil {
		t.Fatal(err)
	}
	n := testPlot.Size/CoarseStride + 2
	if len(samples) != n*n {
		t.Fatalf("Expected %v samples, got %v", n*n, len(samples))
	}

	deepest := samples[0]
	for _, s := range samples {
		if s.Potential > deepest.Potential {
			deepest = s
		}
	}
	if deepest.X != 100 || deepest.Y != 100 {
		t.Fatalf("Deepest point should be the heavy source, got %+v", deepest)
	}

	if _, err := SampleGrid(1, nil, testPlot); !errors.Is(err, ErrNoSources) {
		t.Fatalf("Expected ErrNoSources, got %v", err)
	}
	if _, err := SampleGrid(1, sources, render.Plot{Size: 10}); !errors.Is(err, render.ErrBadView) {
		t.Fatalf("Expected ErrBadView, got %v", err)
	}
}

func TestGenerator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.png")

	samples, err := SavePNG(path, 1, []Source{{f64.Vec2{10, -20}, 1e10}}, testPlot)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("Bad image bounds %v", b)
	}

	samplePath := filepath.Join(dir, "field.json")
	if err := SaveSampleFile(samplePath, samples); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSampleFile(samplePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(samples) || loaded[7] != samples[7] {
		t.Fatalf("Sample file changed the samples")
	}

	redraw := filepath.Join(dir, "redraw.png")
	if err := RenderSamples(redraw, loaded, testPlot.Size); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(redraw); err != nil || info.Size() == 0 {
		t.Fatalf("Redraw from samples failed (%v)", err)
	}
}

func TestEmptySampleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := SaveSampleFile(path, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSampleFile(path); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("Expected ErrNoSamples, got %v", err)
	}
	if _, err := LoadSampleFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("Missing sample file should fail")
	}
}
