package snapshot

import (
	"io"

	"github.com/osmworks/osmh/diff"
	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Interval is one entry of an object's timeline: the half-open time range
// during which one version was the object's current state. The final
// interval of a live object ends at osm.EndOfTime.
type Interval struct {
	Version   uint32
	Changeset int64
	Start     osm.Timestamp
	End       osm.Timestamp
	Visible   bool
}

// Degenerate reports whether the interval has zero width, which happens
// when the version was superseded within the same second it was created.
func (iv Interval) Degenerate() bool {
	return iv.Start == iv.End
}

// Timeline computes the validity interval of every version in one
// object's chain. All versions must belong to the same object; mixed
// input is rejected with errors.ErrInvalidRequest before any interval
// math runs, since the diff constructor treats a mix as caller misuse.
func Timeline(chain []osm.Object) ([]Interval, error) {
	if len(chain) == 0 {
		return nil, nil
	}
	head := chain[0]
	for _, obj := range chain[1:] {
		if obj.ObjectType() != head.ObjectType() || obj.ObjectID() != head.ObjectID() {
			return nil, errors.NewInvalidRequestError(
				"timeline needs a single object chain, got %s %d and %s %d",
				head.ObjectType(), head.ObjectID(), obj.ObjectType(), obj.ObjectID())
		}
	}

	intervals := make([]Interval, 0, len(chain))
	it := diff.NewIterator(diff.NewSliceSource(chain))
	for {
		d, err := it.Next()
		if err == io.EOF {
			return intervals, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "compute timeline")
		}
		intervals = append(intervals, Interval{
			Version:   d.Version(),
			Changeset: d.Changeset(),
			Start:     d.StartTime(),
			End:       d.EndTime(),
			Visible:   d.Curr().ObjectInfo().Visible,
		})
	}
}
