// Package diff provides a window onto one position in the version chain
// of an OpenStreetMap object: the previous, current and next version of
// the same object, plus the temporal queries that fall out of that
// grouping — the half-open validity interval of the current version,
// interval overlap, and point-in-time visibility.
//
// A diff.Object never owns or copies the versions it references and never
// walks the chain itself; the Iterator (or any other driver) constructs a
// fresh window for each position and hands it to the consumer.
package diff

import (
	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Object holds references to three versions of one map object: the
// current version, the one before it, and the one after it. All three
// always have the same type and ID, but different versions.
//
// If the current version is the first version available, Prev is the same
// reference as Curr. If it is the last version available, Next is the
// same reference as Curr. Reference identity here is pointer identity:
// the driver must pass the same *osm.Node (or *osm.Way, *osm.Relation)
// value, not an equal copy.
//
// The zero value is the empty window. Except for Empty, no method may be
// called on an empty window; doing so is a programming error and panics
// with an assertion failure. Objects are immutable once constructed.
type Object struct {
	prev osm.Object
	curr osm.Object
	next osm.Object
}

// New constructs a non-empty window from the given versions. All three
// must have the same object type and the same ID; a mismatch means the
// driver built the window from the wrong chain and is fatal.
func New(prev, curr, next osm.Object) Object {
	if prev.ObjectType() != curr.ObjectType() || curr.ObjectType() != next.ObjectType() {
		panic(errors.AssertionFailedf(
			"diff window over mismatched object types: prev=%s curr=%s next=%s",
			prev.ObjectType(), curr.ObjectType(), next.ObjectType()))
	}
	if prev.ObjectID() != curr.ObjectID() || curr.ObjectID() != next.ObjectID() {
		panic(errors.AssertionFailedf(
			"diff window over mismatched object IDs: prev=%d curr=%d next=%d",
			prev.ObjectID(), curr.ObjectID(), next.ObjectID()))
	}
	return Object{prev: prev, curr: curr, next: next}
}

// Empty reports whether the window was zero-constructed and holds no
// versions. Empty windows exist only as placeholders.
func (d Object) Empty() bool {
	return d.prev == nil
}

func (d Object) mustNotBeEmpty() {
	if d.prev == nil || d.curr == nil || d.next == nil {
		panic(errors.AssertionFailedf("temporal accessor called on empty diff window"))
	}
}

// Prev returns the previous version. For the first version in the chain
// this is the current version itself.
func (d Object) Prev() osm.Object {
	d.mustNotBeEmpty()
	return d.prev
}

// Curr returns the current version.
func (d Object) Curr() osm.Object {
	d.mustNotBeEmpty()
	return d.curr
}

// Next returns the next version. For the last version in the chain this
// is the current version itself.
func (d Object) Next() osm.Object {
	d.mustNotBeEmpty()
	return d.next
}

// First reports whether the current version is the first one available
// for this object.
func (d Object) First() bool {
	d.mustNotBeEmpty()
	return d.prev == d.curr
}

// Last reports whether the current version is the last one available for
// this object.
func (d Object) Last() bool {
	d.mustNotBeEmpty()
	return d.curr == d.next
}

// Type returns the object type of the current version.
func (d Object) Type() osm.ObjectType {
	d.mustNotBeEmpty()
	return d.curr.ObjectType()
}

// ID returns the ID of the current version.
func (d Object) ID() osm.ObjectID {
	d.mustNotBeEmpty()
	return d.curr.ObjectID()
}

// Version returns the version number of the current version.
func (d Object) Version() uint32 {
	d.mustNotBeEmpty()
	return d.curr.ObjectInfo().Version
}

// Changeset returns the changeset ID of the current version.
func (d Object) Changeset() int64 {
	d.mustNotBeEmpty()
	return d.curr.ObjectInfo().Changeset
}

// StartTime returns the timestamp at which the current version was
// created, i.e. the start of its validity interval.
func (d Object) StartTime() osm.Timestamp {
	d.mustNotBeEmpty()
	return d.curr.ObjectInfo().Timestamp
}

// EndTime returns the timestamp at which the current version stopped
// being valid, i.e. the creation time of the next version. For the last
// version in the chain it returns osm.EndOfTime, which compares greater
// than any real timestamp, so "still current" needs no special casing in
// interval math.
func (d Object) EndTime() osm.Timestamp {
	d.mustNotBeEmpty()
	if d.Last() {
		return osm.EndOfTime
	}
	return d.next.ObjectInfo().Timestamp
}

// IsBetween reports whether the validity interval [StartTime, EndTime)
// intersects the half-open query interval [from, to).
//
// Zero-width intervals need care: two edits within the same second
// produce a version with StartTime == EndTime. Such a version counts as
// valid at exactly that instant, so for the degenerate case the lower
// bound comparison is inclusive (end >= from) where the regular case is
// strict (end > from). The upper bound (start < to) is strict either way.
func (d Object) IsBetween(from, to osm.Timestamp) bool {
	d.mustNotBeEmpty()
	start := d.StartTime()
	end := d.EndTime()
	return start < to &&
		((start != end && end > from) ||
			(start == end && end >= from))
}

// IsVisibleAt reports whether the current version was the visible state
// of the object at the given instant: the instant lies in the validity
// interval and the version is not a deletion. A deleted version is never
// visible, no matter the instant.
func (d Object) IsVisibleAt(ts osm.Timestamp) bool {
	d.mustNotBeEmpty()
	return d.StartTime() <= ts && d.EndTime() > ts && d.curr.ObjectInfo().Visible
}
