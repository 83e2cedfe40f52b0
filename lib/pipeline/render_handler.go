package pipeline

import (
	"errors"

	"github.com/colinrgodsey/orbitd/lib/field"
	"github.com/colinrgodsey/orbitd/lib/gcode"
	"github.com/colinrgodsey/orbitd/lib/io"
	"github.com/colinrgodsey/orbitd/lib/render"
)

var (
	errNoPath       = errors.New("missing png path")
	errNoSampleFile = errors.New("missing sample file path")
)

type renderHandler struct {
	head, tail io.Conn

	plot  render.Plot
	scene Scene
}

// RenderHandler keeps the latest scene from the sim handler. M240 draws
// its trails and M241 its potential field. M242 redraws a field from a
// saved sample file. It is the last command handler, so any command
// reaching it is answered here. Protocol lines are passed on to tail.
func RenderHandler(plot render.Plot) func(head, tail io.Conn) {
	return func(head, tail io.Conn) {
		h := &renderHandler{
			head: head, tail: tail,
			plot: plot,
		}
		run(head, tail, h.headRead)
	}
}

func (h *renderHandler) headRead(msg io.Any) {
	switch msg := msg.(type) {
	case Scene:
		h.scene = msg
	case gcode.GCode:
		switch {
		case msg.IsM(240):
			if err := h.saveTracks(msg.Args); err != nil {
				h.head.Write("error:" + err.Error())
			}
		case msg.IsM(241):
			if err := h.saveField(msg.Args); err != nil {
				h.head.Write("error:" + err.Error())
			}
		case msg.IsM(242):
			if err := h.loadField(msg.Args); err != nil {
				h.head.Write("error:" + err.Error())
			}
		default:
			warn(h.head, "unsupported command %v", msg)
		}
		h.head.Write(okLine(msg))
	default:
		h.tail.Write(msg)
	}
}

func (h *renderHandler) saveTracks(args gcode.Args) error {
	path, ok := args.GetString('P')
	if !ok {
		return errNoPath
	}
	if err := h.plot.SavePNG(path, h.scene.Tracks); err != nil {
		return err
	}
	info(h.head, "rendered %v tracks to %v", len(h.scene.Tracks), path)
	return nil
}

// saveField draws the potential field to P, and writes the coarse
// samples as JSON to S if given.
func (h *renderHandler) saveField(args gcode.Args) error {
	path, ok := args.GetString('P')
	if !ok {
		return errNoPath
	}
	samples, err := field.SavePNG(path, h.scene.G, h.scene.Sources, h.plot)
	if err != nil {
		return err
	}
	info(h.head, "rendered potential of %v bodies to %v", len(h.scene.Sources), path)

	if spath, ok := args.GetString('S'); ok {
		if err := field.SaveSampleFile(spath, samples); err != nil {
			return err
		}
		info(h.head, "saved %v field samples to %v", len(samples), spath)
	}
	return nil
}

// loadField draws the samples saved at L to P.
func (h *renderHandler) loadField(args gcode.Args) error {
	path, ok := args.GetString('P')
	if !ok {
		return errNoPath
	}
	spath, ok := args.GetString('L')
	if !ok {
		return errNoSampleFile
	}
	samples, err := field.LoadSampleFile(spath)
	if err != nil {
		return err
	}
	if err := field.RenderSamples(path, samples, h.plot.Size); err != nil {
		return err
	}
	info(h.head, "rendered %v field samples from %v to %v", len(samples), spath, path)
	return nil
}
