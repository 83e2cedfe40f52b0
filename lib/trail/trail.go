package trail

import (
	"errors"
	"fmt"
)

// ErrUnknownBody is returned for a body id the recorder doesn't track
var ErrUnknownBody = errors.New("trail: unknown body")

// ring is a FIFO of positions. Bounded rings evict the oldest entry
// once full, unbounded rings (limit <= 0) grow forever.
type ring[V any] struct {
	buf   []V
	start int
	n     int
	limit int
}

func (r *ring[V]) push(v V) {
	if r.limit <= 0 {
		r.buf = append(r.buf, v)
		r.n++
		return
	}
	if r.n < r.limit {
		r.buf = append(r.buf, v)
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % r.limit
}

func (r *ring[V]) slice() []V {
	out := make([]V, 0, r.n)
	out = append(out, r.buf[r.start:r.n]...)
	return append(out, r.buf[:r.start]...)
}

// Recorder keeps a bounded history of positions for each body.
type Recorder[V any] struct {
	trails []ring[V]
	limit  int
}

// New creates a Recorder for n bodies keeping at most limit
// positions per body. A limit <= 0 keeps everything.
func New[V any](n, limit int) *Recorder[V] {
	r := &Recorder[V]{limit: limit}
	r.trails = make([]ring[V], n)
	r.Reset()
	return r
}

// Record appends pos to the trail for id, evicting the oldest entry
// if the trail would exceed the limit.
func (r *Recorder[V]) Record(id int, pos V) error {
	if id < 0 || id >= len(r.trails) {
		return fmt.Errorf("%w: %v", ErrUnknownBody, id)
	}
	r.trails[id].push(pos)
	return nil
}

// Snapshot returns a copy of the trail for id, oldest first.
func (r *Recorder[V]) Snapshot(id int) ([]V, error) {
	if id < 0 || id >= len(r.trails) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownBody, id)
	}
	return r.trails[id].slice(), nil
}

// Reset clears all trails
func (r *Recorder[V]) Reset() {
	for i := range r.trails {
		r.trails[i] = ring[V]{limit: r.limit}
		if r.limit > 0 {
			r.trails[i].buf = make([]V, 0, r.limit)
		}
	}
}
