package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/colinrgodsey/cartesius/f64"

	"github.com/colinrgodsey/orbitd/lib/field"
	"github.com/colinrgodsey/orbitd/lib/gcode"
	"github.com/colinrgodsey/orbitd/lib/io"
	"github.com/colinrgodsey/orbitd/lib/render"
	"github.com/colinrgodsey/orbitd/lib/sim"
	"github.com/colinrgodsey/orbitd/lib/vec"
)

var (
	errFrameCount = errors.New("frame count must be positive")
	errBodyID     = errors.New("missing body id")
)

type simHandler[V vec.Vec[V]] struct {
	head, tail io.Conn

	d         *sim.Driver[V]
	maxFrames int
}

// SimHandler confines d to a single goroutine and runs it on behalf of
// the commands arriving from head. maxFrames caps the total number of
// frames, <= 0 for no cap. Unknown commands are passed to tail.
func SimHandler[V vec.Vec[V]](d *sim.Driver[V], maxFrames int) func(head, tail io.Conn) {
	return func(head, tail io.Conn) {
		h := &simHandler[V]{
			head: head, tail: tail,
			d:         d,
			maxFrames: maxFrames,
		}
		h.sendScene()
		run(head, tail, h.headRead)
	}
}

func (h *simHandler[V]) headRead(msg io.Any) {
	switch msg := msg.(type) {
	case Echo:
		h.head.Write(string(msg))
		return
	case gcode.GCode:
		var err error
		switch {
		case msg.IsG(1):
			err = h.advance(msg.Args.GetIntOr('F', 1))
		case msg.IsM(114):
			err = h.writeFrame(h.d.Last(), false)
		case msg.IsM(105):
			info(h.head, "%v", h.d.Stats())
		case msg.IsM(115):
			h.writeParams()
		case msg.IsM(118):
			err = h.writeTrail(msg.Args)
		default:
			h.tail.Write(msg)
			return
		}
		if err != nil {
			h.head.Write("error:" + err.Error())
		}
		h.head.Write(okLine(msg))
		return
	}
	h.tail.Write(msg)
}

func (h *simHandler[V]) advance(n int) (err error) {
	if n <= 0 {
		return fmt.Errorf("%w, got %v", errFrameCount, n)
	}
	if h.maxFrames > 0 {
		left := h.maxFrames - h.d.Frames()
		if left <= 0 {
			warn(h.head, "frame limit of %v reached", h.maxFrames)
			return
		}
		if n > left {
			warn(h.head, "only %v of %v frames left", left, n)
			n = left
		}
	}

	defer h.sendScene()
	for i := 0; i < n; i++ {
		frame, err := h.d.AdvanceFrame()
		if err != nil {
			return err
		}
		if err := h.writeFrame(frame, true); err != nil {
			return err
		}
	}
	return
}

func (h *simHandler[V]) writeFrame(frame sim.Frame[V], sink bool) error {
	line, err := FrameLine(frame)
	if err != nil {
		return err
	}
	h.head.Write(line)
	if sink {
		h.tail.Write(line)
	}
	return nil
}

func (h *simHandler[V]) writeParams() {
	p := h.d.Params()
	mode := "absolute"
	if p.CentroidRelativeTrails {
		mode = "centroid-relative"
	}
	info(h.head, "bodies=%v dimensions=%v dt=%v steps-per-frame=%v trail-length=%v trails=%v",
		len(h.d.Bodies()), vec.Dims[V](), p.Dt, p.StepsPerFrame, p.TrailLength, mode)
}

func (h *simHandler[V]) writeTrail(args gcode.Args) error {
	id, ok := args.GetInt('B')
	if !ok {
		return errBodyID
	}
	tr, err := h.d.Trail(id)
	if err != nil {
		return err
	}
	if tr == nil {
		tr = []V{}
	}
	bytes, err := json.Marshal(tr)
	if err != nil {
		return err
	}
	h.head.Write(fmt.Sprintf("trail:%v:%s", id, bytes))
	return nil
}

func (h *simHandler[V]) sendScene() {
	frame := h.d.Last()
	bodies := h.d.Bodies()
	scene := Scene{
		G:       h.d.Params().G,
		Tracks:  make([]render.Track, len(frame.Bodies)),
		Sources: make([]field.Source, len(frame.Bodies)),
	}
	for i, bf := range frame.Bodies {
		tr, _ := h.d.Trail(i)
		points := make([]f64.Vec2, len(tr))
		for j, pos := range tr {
			points[j][0], points[j][1] = vec.XY(pos)
		}
		scene.Tracks[i] = render.Track{Points: points}

		// sources share the trails' reference frame
		src := &scene.Sources[i]
		src.Mass = bodies[i].Mass
		src.Position[0], src.Position[1] = vec.XY(bf.Position)
	}
	h.tail.Write(scene)
}

// FrameLine formats frame as a protocol line, without trails.
func FrameLine[V vec.Vec[V]](frame sim.Frame[V]) (string, error) {
	bodies := make([]sim.BodyFrame[V], len(frame.Bodies))
	for i, b := range frame.Bodies {
		b.Trail = nil
		bodies[i] = b
	}
	frame.Bodies = bodies

	bytes, err := json.Marshal(frame)
	if err != nil {
		return "", err
	}
	return "frame:" + string(bytes), nil
}
