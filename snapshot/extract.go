// Package snapshot derives point-in-time views from version history: the
// set of objects visible at an instant, and per-object timelines of
// validity intervals. It is the main consumer of the diff package.
package snapshot

import (
	"io"

	"github.com/osmworks/osmh/diff"
	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Extract replays src through a diff iterator and collects every object
// version that was the visible state of its object at the given instant.
// The result is the instant's extract: at most one version per object,
// deletions excluded.
func Extract(src diff.Source, at osm.Timestamp) ([]osm.Object, error) {
	var out []osm.Object
	it := diff.NewIterator(src)
	for {
		d, err := it.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "extract snapshot")
		}
		if d.IsVisibleAt(at) {
			out = append(out, d.Curr())
		}
	}
}

// CollectChain filters the versions of a single object out of src,
// preserving order. It returns errors.ErrNotFound when the stream
// contains no version of the object.
func CollectChain(src diff.Source, typ osm.ObjectType, id osm.ObjectID) ([]osm.Object, error) {
	var chain []osm.Object
	for {
		obj, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "collect chain")
		}
		if obj.ObjectType() == typ && obj.ObjectID() == id {
			chain = append(chain, obj)
		}
	}
	if len(chain) == 0 {
		return nil, errors.NewNotFoundError("%s %d has no versions in this stream", typ, id)
	}
	return chain, nil
}
