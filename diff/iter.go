package diff

import (
	"io"

	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Source yields successive object versions. Implementations must return
// versions grouped by object (same type and ID contiguous) and ordered by
// ascending version within each group — history files are stored this
// way. The stream ends with io.EOF.
type Source interface {
	Next() (osm.Object, error)
}

// SliceSource adapts an in-memory slice to the Source interface.
type SliceSource struct {
	objs []osm.Object
	pos  int
}

// NewSliceSource returns a Source yielding the given objects in order.
func NewSliceSource(objs []osm.Object) *SliceSource {
	return &SliceSource{objs: objs}
}

func (s *SliceSource) Next() (osm.Object, error) {
	if s.pos >= len(s.objs) {
		return nil, io.EOF
	}
	o := s.objs[s.pos]
	s.pos++
	return o, nil
}

// Iterator turns an ordered version stream into a stream of diff windows,
// yielding one Object per input version. For each version it determines
// whether the neighbors in the stream belong to the same chain; where
// they do not (or the stream ends), the window points back at the current
// version, producing the first/last self-references New expects.
//
// The iterator buffers at most two versions ahead of the one most
// recently yielded, so the referenced objects stay valid for at least one
// iteration step.
type Iterator struct {
	src     Source
	prev    osm.Object // last yielded version, nil before the first yield
	curr    osm.Object // version the next window is built around
	pending osm.Object // lookahead, nil once drained
	started bool
	done    bool
}

// NewIterator creates an Iterator over src.
func NewIterator(src Source) *Iterator {
	return &Iterator{src: src}
}

// Next returns the diff window for the next position in the stream, or
// io.EOF when the stream is exhausted. Any other error comes from the
// underlying Source and ends the iteration.
func (it *Iterator) Next() (Object, error) {
	if it.done {
		return Object{}, io.EOF
	}

	if !it.started {
		if err := it.start(); err != nil {
			return Object{}, err
		}
	}

	if it.curr == nil {
		it.done = true
		return Object{}, io.EOF
	}

	prev := it.curr
	if it.prev != nil && sameChain(it.prev, it.curr) {
		prev = it.prev
	}
	next := it.curr
	if it.pending != nil && sameChain(it.curr, it.pending) {
		next = it.pending
	}

	window := New(prev, it.curr, next)

	it.prev = it.curr
	it.curr = it.pending
	if it.pending != nil {
		var err error
		it.pending, err = it.read()
		if err != nil {
			return Object{}, err
		}
	}

	return window, nil
}

// start primes curr and the lookahead from the source.
func (it *Iterator) start() error {
	it.started = true
	var err error
	if it.curr, err = it.read(); err != nil {
		return err
	}
	if it.curr == nil {
		return nil
	}
	it.pending, err = it.read()
	return err
}

// read fetches one version, mapping io.EOF to a nil object.
func (it *Iterator) read() (osm.Object, error) {
	o, err := it.src.Next()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		it.done = true
		return nil, errors.Wrap(err, "diff iterator: read from source")
	}
	return o, nil
}

// sameChain reports whether two versions belong to the same object.
func sameChain(a, b osm.Object) bool {
	return a.ObjectType() == b.ObjectType() && a.ObjectID() == b.ObjectID()
}
