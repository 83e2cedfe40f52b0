package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/colinrgodsey/orbitd/lib/config"
	"github.com/colinrgodsey/orbitd/lib/physics"
	"github.com/colinrgodsey/orbitd/lib/trail"
	"github.com/colinrgodsey/orbitd/lib/vec"
)

// ErrInvalidParams is returned for unusable driver parameters
var ErrInvalidParams = errors.New("sim: invalid parameters")

// Params are fixed at startup and never change during a run.
type Params struct {
	G                      float64
	Dt                     float64
	StepsPerFrame          int
	TrailLength            int
	CentroidRelativeTrails bool
}

func (p Params) validate() error {
	switch {
	case !(p.G > 0) || math.IsInf(p.G, 0):
		return fmt.Errorf("%w: g must be positive, got %v", ErrInvalidParams, p.G)
	case !(p.Dt > 0) || math.IsInf(p.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidParams, p.Dt)
	case p.StepsPerFrame <= 0:
		return fmt.Errorf("%w: steps per frame must be positive, got %v", ErrInvalidParams, p.StepsPerFrame)
	}
	return nil
}

// BodyFrame is the renderer's view of one body after a frame.
type BodyFrame[V vec.Vec[V]] struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`

	// Position is in the same reference frame as Trail.
	Position V   `json:"position"`
	Absolute V   `json:"absolute"`
	Trail    []V `json:"trail,omitempty"`
}

// Frame is a read-only snapshot handed to the renderer.
type Frame[V vec.Vec[V]] struct {
	Index    int            `json:"frame"`
	Time     float64        `json:"time"`
	Centroid V              `json:"centroid"`
	Relative bool           `json:"relative"`
	Bodies   []BodyFrame[V] `json:"bodies"`
}

// Driver steps a System a fixed number of times per frame and records
// trails. A Driver is not safe for concurrent use.
type Driver[V vec.Vec[V]] struct {
	params Params
	sys    *physics.System[V]
	trails *trail.Recorder[V]

	frames int
	last   Frame[V]
	err    error
}

// NewDriver validates params and bodies and creates a new Driver.
func NewDriver[V vec.Vec[V]](params Params, bodies []physics.Body[V]) (*Driver[V], error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	sys, err := physics.NewSystem(params.G, bodies)
	if err != nil {
		return nil, err
	}
	d := &Driver[V]{
		params: params,
		sys:    sys,
		trails: trail.New[V](sys.Len(), params.TrailLength),
	}
	d.last = d.snapshot(false)
	return d, nil
}

// FromConfig builds a Driver from a loaded config. The config's
// dimensions must match V.
func FromConfig[V vec.Vec[V]](conf config.Config) (*Driver[V], error) {
	if conf.Dimensions != vec.Dims[V]() {
		return nil, fmt.Errorf("%w: config has %v dimensions, driver has %v",
			ErrInvalidParams, conf.Dimensions, vec.Dims[V]())
	}
	bodies := make([]physics.Body[V], len(conf.Bodies))
	for i, b := range conf.Bodies {
		pos, err := vec.FromSlice[V](b.Position)
		if err != nil {
			return nil, fmt.Errorf("body %v position: %w", i, err)
		}
		vel, err := vec.FromSlice[V](b.Velocity)
		if err != nil {
			return nil, fmt.Errorf("body %v velocity: %w", i, err)
		}
		bodies[i] = physics.Body[V]{Name: b.Name, Mass: b.Mass, Position: pos, Velocity: vel}
	}
	return NewDriver(Params{
		G:                      conf.G,
		Dt:                     conf.Dt,
		StepsPerFrame:          conf.StepsPerFrame,
		TrailLength:            conf.TrailLength,
		CentroidRelativeTrails: conf.CentroidRelativeTrails,
	}, bodies)
}

// AdvanceFrame runs StepsPerFrame steps, records trails, and returns the
// resulting frame. If any step fails the frame is discarded, no trail
// entries are recorded, and the driver refuses to advance any further.
func (d *Driver[V]) AdvanceFrame() (Frame[V], error) {
	if d.err != nil {
		return Frame[V]{}, d.err
	}

	// step on a copy so a failure can't leave a half advanced frame behind
	next := d.sys.Clone()
	for i := 0; i < d.params.StepsPerFrame; i++ {
		if err := next.Step(d.params.Dt); err != nil {
			d.err = fmt.Errorf("sim: frame %v aborted: %w", d.frames+1, err)
			return Frame[V]{}, d.err
		}
	}
	d.sys = next
	d.frames++

	d.last = d.snapshot(true)
	return d.last, nil
}

// Run advances n frames, passing each to fn. n <= 0 runs until fn or
// a step returns an error.
func (d *Driver[V]) Run(n int, fn func(Frame[V]) error) error {
	for i := 0; n <= 0 || i < n; i++ {
		frame, err := d.AdvanceFrame()
		if err != nil {
			return err
		}
		if err := fn(frame); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver[V]) snapshot(record bool) Frame[V] {
	centroid, _ := d.sys.Centroid()
	frame := Frame[V]{
		Index:    d.frames,
		Time:     float64(d.frames*d.params.StepsPerFrame) * d.params.Dt,
		Centroid: centroid,
		Relative: d.params.CentroidRelativeTrails,
		Bodies:   make([]BodyFrame[V], d.sys.Len()),
	}
	for i, b := range d.sys.Bodies() {
		pos := b.Position
		if d.params.CentroidRelativeTrails {
			pos = pos.Sub(centroid)
		}
		if record {
			d.trails.Record(i, pos)
		}
		tr, _ := d.trails.Snapshot(i)
		frame.Bodies[i] = BodyFrame[V]{
			ID:       i,
			Name:     b.Name,
			Position: pos,
			Absolute: b.Position,
			Trail:    tr,
		}
	}
	return frame
}

// Last returns the most recent frame, or the initial state if no
// frame has been advanced yet.
func (d *Driver[V]) Last() Frame[V] {
	return d.last
}

// Err returns the error that stopped the driver, if any
func (d *Driver[V]) Err() error {
	return d.err
}

// Frames returns the number of completed frames
func (d *Driver[V]) Frames() int {
	return d.frames
}

// Elapsed returns simulated seconds since the start
func (d *Driver[V]) Elapsed() float64 {
	return float64(d.frames*d.params.StepsPerFrame) * d.params.Dt
}

func (d *Driver[V]) Params() Params {
	return d.params
}

// Trail returns a copy of the trail of body id
func (d *Driver[V]) Trail(id int) ([]V, error) {
	return d.trails.Snapshot(id)
}

// Bodies returns a copy of the current body states
func (d *Driver[V]) Bodies() []physics.Body[V] {
	return d.sys.Bodies()
}

// System returns a copy of the underlying system. Stepping the copy
// does not affect d.
func (d *Driver[V]) System() *physics.System[V] {
	return d.sys.Clone()
}

// Stats summarizes conserved quantities of the current state.
type Stats[V vec.Vec[V]] struct {
	Steps       int     `json:"steps"`
	Time        float64 `json:"time"`
	Momentum    V       `json:"momentum"`
	Energy      float64 `json:"energy"`
	Centroid    V       `json:"centroid"`
	Fingerprint uint64  `json:"fingerprint"`
}

func (d *Driver[V]) Stats() Stats[V] {
	c, _ := d.sys.Centroid()
	return Stats[V]{
		Steps:       d.sys.Steps(),
		Time:        d.Elapsed(),
		Momentum:    d.sys.Momentum(),
		Energy:      d.sys.Energy(),
		Centroid:    c,
		Fingerprint: d.sys.Fingerprint(),
	}
}

func (s Stats[V]) String() string {
	return fmt.Sprintf("step=%v time=%v momentum=%v energy=%v centroid=%v fingerprint=%016x",
		s.Steps, s.Time, s.Momentum, s.Energy, s.Centroid, s.Fingerprint)
}
