package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/colinrgodsey/cartesius/f64"
)

func TestDraw(t *testing.T) {
	plot := Plot{View: f64.Vec2{100, 100}, Size: 200}
	tracks := []Track{
		{Points: []f64.Vec2{{-50, 0}, {0, 0}}},
		{Points: []f64.Vec2{{50, 50}}},
		{},
	}

	img, err := plot.Draw(tracks)
	if err != nil {
		t.Fatal(err)
	}

	if img.At(100, 100) != TrackColor(0, 3) {
		t.Fatalf("Missing marker at origin: %v", img.At(100, 100))
	}
	if img.At(150, 50) != TrackColor(1, 3) {
		t.Fatalf("Missing marker for track 1 (y should point up): %v", img.At(150, 50))
	}
	if c := img.At(50, 100); c == (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("Trail point not drawn")
	}
	if c := img.At(10, 190); c != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("Background should be black, got %v", c)
	}
	if TrackColor(0, 3) == TrackColor(1, 3) {
		t.Fatalf("Tracks should have distinct colors")
	}
}

func TestBadView(t *testing.T) {
	for _, p := range [...]Plot{{View: f64.Vec2{0, 1}, Size: 10}, {View: f64.Vec2{1, 1}}} {
		if _, err := p.Draw(nil); err != ErrBadView {
			t.Fatalf("Expected ErrBadView for %+v, got %v", p, err)
		}
	}
}

func TestSavePNG(t *testing.T) {
	const path = "trails_test.png"
	plot := Plot{View: f64.Vec2{5e8, 5e8}, Size: 64}
	tracks := []Track{{Points: []f64.Vec2{{384400000, 0}, {1e20, 1e20}}}}

	if err := plot.SavePNG(path, tracks); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Bad PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("Bad image size %v", b)
	}
}

func TestWorld(t *testing.T) {
	plot := Plot{View: f64.Vec2{100, 50}, Size: 200}
	for _, pos := range []f64.Vec2{{0, 0}, {-100, 50}, {50, -25}} {
		x, y := plot.pixel(pos)
		if w := plot.World(float64(x), float64(y)); w != pos {
			t.Fatalf("World(pixel(%v)) = %v", pos, w)
		}
	}
}
