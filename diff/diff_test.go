package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmworks/osmh/osm"
)

// node builds one node version for tests. Visibility defaults to true;
// deletions use deletedNode.
func node(id osm.ObjectID, version uint32, ts osm.Timestamp) *osm.Node {
	return &osm.Node{
		ID: id,
		Info: osm.Info{
			Version:   version,
			Changeset: int64(1000 + version),
			Timestamp: ts,
			Visible:   true,
		},
	}
}

func deletedNode(id osm.ObjectID, version uint32, ts osm.Timestamp) *osm.Node {
	n := node(id, version, ts)
	n.Info.Visible = false
	return n
}

func TestEmptyWindow(t *testing.T) {
	var d Object
	assert.True(t, d.Empty())

	nonEmpty := New(node(1, 1, 100), node(1, 1, 100), node(1, 1, 100))
	assert.False(t, nonEmpty.Empty())
}

func TestAccessorsPanicOnEmpty(t *testing.T) {
	var d Object

	calls := map[string]func(){
		"Prev":        func() { d.Prev() },
		"Curr":        func() { d.Curr() },
		"Next":        func() { d.Next() },
		"First":       func() { d.First() },
		"Last":        func() { d.Last() },
		"Type":        func() { d.Type() },
		"ID":          func() { d.ID() },
		"Version":     func() { d.Version() },
		"Changeset":   func() { d.Changeset() },
		"StartTime":   func() { d.StartTime() },
		"EndTime":     func() { d.EndTime() },
		"IsBetween":   func() { d.IsBetween(0, 1) },
		"IsVisibleAt": func() { d.IsVisibleAt(0) },
	}
	for name, call := range calls {
		assert.Panics(t, call, "%s on empty window should panic", name)
	}
}

func TestNewPanicsOnMismatchedID(t *testing.T) {
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 200)
	stranger := node(2, 1, 150)

	require.Panics(t, func() { New(v1, v2, stranger) })
	require.Panics(t, func() { New(stranger, v1, v2) })
}

func TestNewPanicsOnMismatchedType(t *testing.T) {
	n := node(1, 1, 100)
	w := &osm.Way{ID: 1, Info: osm.Info{Version: 2, Timestamp: 200, Visible: true}}

	require.Panics(t, func() { New(n, n, w) })
}

func TestFirstAndLast(t *testing.T) {
	v1 := node(7, 1, 100)
	v2 := node(7, 2, 200)
	v3 := node(7, 3, 300)

	only := New(v1, v1, v1)
	assert.True(t, only.First())
	assert.True(t, only.Last())

	first := New(v1, v1, v2)
	assert.True(t, first.First())
	assert.False(t, first.Last())

	middle := New(v1, v2, v3)
	assert.False(t, middle.First())
	assert.False(t, middle.Last())

	last := New(v2, v3, v3)
	assert.False(t, last.First())
	assert.True(t, last.Last())
}

func TestFirstUsesReferenceIdentityNotValueEquality(t *testing.T) {
	v1 := node(7, 1, 100)
	v1Copy := node(7, 1, 100) // equal fields, distinct allocation
	v2 := node(7, 2, 200)

	d := New(v1Copy, v1, v2)
	assert.False(t, d.First(), "an equal copy is not the same reference")
}

func TestForwardedAccessors(t *testing.T) {
	v1 := node(42, 1, 100)
	v2 := node(42, 2, 200)
	v3 := node(42, 3, 300)

	d := New(v1, v2, v3)
	assert.Equal(t, osm.TypeNode, d.Type())
	assert.Equal(t, osm.ObjectID(42), d.ID())
	assert.Equal(t, uint32(2), d.Version())
	assert.Equal(t, int64(1002), d.Changeset())
	assert.Same(t, v1, d.Prev())
	assert.Same(t, v2, d.Curr())
	assert.Same(t, v3, d.Next())
}

func TestStartAndEndTime(t *testing.T) {
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 200)
	v3 := node(1, 3, 300)

	middle := New(v1, v2, v3)
	assert.Equal(t, osm.Timestamp(200), middle.StartTime())
	assert.Equal(t, osm.Timestamp(300), middle.EndTime())

	last := New(v2, v3, v3)
	assert.Equal(t, osm.Timestamp(300), last.StartTime())
	assert.Equal(t, osm.EndOfTime, last.EndTime())
	assert.True(t, last.EndTime().IsEndOfTime())
}

func TestEndOfTimeComparesGreaterThanAnyRealTimestamp(t *testing.T) {
	// 9999-12-31T23:59:59Z, far beyond anything the data source produces.
	far, err := osm.ParseTimestamp("9999-12-31T23:59:59Z")
	require.NoError(t, err)
	assert.Greater(t, osm.EndOfTime, far)
	assert.Greater(t, osm.EndOfTime, osm.Timestamp(0))
}

func TestIsBetween(t *testing.T) {
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 200)
	v3 := node(1, 3, 300)
	middle := New(v1, v2, v3) // valid [200, 300)
	last := New(v2, v3, v3)   // valid [300, end-of-time)

	tests := []struct {
		name string
		d    Object
		from osm.Timestamp
		to   osm.Timestamp
		want bool
	}{
		{"query before interval", middle, 100, 200, false},
		{"query starts at interval start", middle, 200, 201, true},
		{"query inside interval", middle, 250, 260, true},
		{"query contains interval", middle, 100, 400, true},
		{"interval contains query", middle, 210, 290, true},
		{"query ends at interval start", middle, 150, 200, false},
		{"query starts at interval end", middle, 300, 400, false},
		{"query overlaps lower edge", middle, 150, 250, true},
		{"query overlaps upper edge", middle, 250, 350, true},
		{"empty query interval", middle, 250, 250, false},
		{"open-ended version, query after start", last, 1000, 2000, true},
		{"open-ended version, query before start", last, 100, 300, false},
		{"open-ended version, query up to end of time", last, 300, osm.EndOfTime, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.IsBetween(tt.from, tt.to))
		})
	}
}

func TestIsBetweenContainmentImpliesOverlap(t *testing.T) {
	// If [StartTime, EndTime) is contained in [from, to), IsBetween must
	// be true. Checked across first/middle/last positions.
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 200)
	v3 := node(1, 3, 300)

	for _, d := range []Object{
		New(v1, v1, v2),
		New(v1, v2, v3),
	} {
		assert.True(t, d.IsBetween(d.StartTime(), d.EndTime()))
		assert.True(t, d.IsBetween(d.StartTime()-10, d.EndTime()+10))
	}
}

func TestIsBetweenDegenerateInterval(t *testing.T) {
	// v2 and v3 share a timestamp: v2's validity interval is [150, 150).
	// The zero-width interval still counts at exactly its own instant,
	// but only from the lower side.
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 150)
	v3 := node(1, 3, 150)

	d := New(v1, v2, v3)
	require.Equal(t, d.StartTime(), d.EndTime())

	assert.True(t, d.IsBetween(150, 151), "query touching the instant from below")
	assert.False(t, d.IsBetween(149, 150), "query ending at the instant")
	assert.True(t, d.IsBetween(100, 200), "query containing the instant")
	assert.False(t, d.IsBetween(151, 200), "query after the instant")
}

func TestIsVisibleAt(t *testing.T) {
	v1 := node(1, 1, 100)
	v2 := node(1, 2, 200)
	v3 := node(1, 3, 300)
	middle := New(v1, v2, v3) // valid [200, 300)

	assert.False(t, middle.IsVisibleAt(199))
	assert.True(t, middle.IsVisibleAt(200), "interval start is inclusive")
	assert.True(t, middle.IsVisibleAt(299))
	assert.False(t, middle.IsVisibleAt(300), "interval end is exclusive")

	last := New(v2, v3, v3)
	assert.True(t, last.IsVisibleAt(300))
	assert.True(t, last.IsVisibleAt(1<<40), "open-ended version stays visible")
}

func TestIsVisibleAtNeverTrueForDeletions(t *testing.T) {
	v1 := node(1, 1, 100)
	v2 := deletedNode(1, 2, 200)
	d := New(v1, v2, v2)

	for _, ts := range []osm.Timestamp{100, 200, 250, 1 << 40} {
		assert.False(t, d.IsVisibleAt(ts), "deleted version visible at %d", ts)
	}
}

// TestSameInstantDeletionScenario walks the documented corner case: an
// object edited and then deleted within the same second.
//
//	v1: ts=100 visible
//	v2: ts=150 visible
//	v3: ts=150 deleted (same instant as v2's creation)
func TestSameInstantDeletionScenario(t *testing.T) {
	v1 := node(9, 1, 100)
	v2 := node(9, 2, 150)
	v3 := deletedNode(9, 3, 150)

	w2 := New(v1, v2, v3)
	assert.Equal(t, osm.Timestamp(150), w2.StartTime())
	assert.Equal(t, osm.Timestamp(150), w2.EndTime())
	assert.False(t, w2.Last())
	assert.True(t, w2.IsBetween(150, 151))
	assert.False(t, w2.IsBetween(149, 150))

	w3 := New(v2, v3, v3)
	assert.True(t, w3.Last())
	assert.Equal(t, osm.EndOfTime, w3.EndTime())
	assert.False(t, w3.IsVisibleAt(200), "deletion is never visible even inside its interval")
}
