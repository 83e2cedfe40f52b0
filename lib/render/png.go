package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/colinrgodsey/cartesius/f64"
	"github.com/lucasb-eyer/go-colorful"
)

const markerRadius = 3

// ErrBadView is returned for non-positive view extents or image size
var ErrBadView = errors.New("render: view and size must be positive")

// Track is the projected (x/y) trail of one body, oldest first.
type Track struct {
	Points []f64.Vec2
}

// Plot maps world coordinates inside [-View, View] onto a
// Size x Size image, y up.
type Plot struct {
	View f64.Vec2
	Size int
}

func (p Plot) pixel(pos f64.Vec2) (int, int) {
	scale := float64(p.Size) / 2
	x := (pos[0]/p.View[0] + 1) * scale
	y := (1 - pos[1]/p.View[1]) * scale
	return int(x), int(y)
}

// World maps pixel coordinates back to world coordinates.
func (p Plot) World(x, y float64) f64.Vec2 {
	scale := float64(p.Size) / 2
	return f64.Vec2{
		(x/scale - 1) * p.View[0],
		(1 - y/scale) * p.View[1],
	}
}

// TrackColor picks an evenly spaced hue for track i of n.
func TrackColor(i, n int) color.RGBA {
	h := 0.0
	if n > 0 {
		h = float64(i) / float64(n)
	}
	r, g, b := colorful.Hsl(h*360, 1, 0.6).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Draw renders every track and a marker at its newest point.
func (p Plot) Draw(tracks []Track) (*image.RGBA, error) {
	if p.Size <= 0 || !(p.View[0] > 0) || !(p.View[1] > 0) {
		return nil, ErrBadView
	}
	img := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	for i, tr := range tracks {
		c := TrackColor(i, len(tracks))
		faded := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
		for _, pos := range tr.Points {
			x, y := p.pixel(pos)
			img.Set(x, y, faded)
		}
		if len(tr.Points) == 0 {
			continue
		}
		cx, cy := p.pixel(tr.Points[len(tr.Points)-1])
		for dy := -markerRadius; dy <= markerRadius; dy++ {
			for dx := -markerRadius; dx <= markerRadius; dx++ {
				if dx*dx+dy*dy <= markerRadius*markerRadius {
					img.Set(cx+dx, cy+dy, c)
				}
			}
		}
	}
	return img, nil
}

// Encode draws tracks and writes them as a PNG to w
func (p Plot) Encode(w io.Writer, tracks []Track) error {
	img, err := p.Draw(tracks)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG draws tracks into a new PNG file at path
func (p Plot) SavePNG(path string, tracks []Track) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Encode(f, tracks)
}
