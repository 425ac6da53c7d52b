package diff

import (
	"github.com/osmworks/osmh/osm"
)

// Typed is a diff window whose Prev, Curr and Next return the concrete
// object kind instead of the osm.Object interface. It adds nothing beyond
// the static narrowing: construction runs the same type/ID assertion as
// New, and all temporal queries come from the embedded Object.
//
// The caller guarantees that all three versions are of kind T by
// constructing through NewTyped, whose signature enforces it. Wrapping a
// plain Object in a Typed of the wrong kind is the same class of fatal
// misuse as a type/ID mismatch: the accessors' type assertions panic.
type Typed[T osm.Object] struct {
	Object
}

// NewTyped constructs a typed window. The type parameter makes the
// same-kind requirement a compile-time property; the same-ID requirement
// is asserted by New as usual.
func NewTyped[T osm.Object](prev, curr, next T) Typed[T] {
	return Typed[T]{Object: New(prev, curr, next)}
}

// Prev returns the previous version as the concrete kind.
func (d Typed[T]) Prev() T {
	return d.Object.Prev().(T)
}

// Curr returns the current version as the concrete kind.
func (d Typed[T]) Curr() T {
	return d.Object.Curr().(T)
}

// Next returns the next version as the concrete kind.
func (d Typed[T]) Next() T {
	return d.Object.Next().(T)
}

// Typed windows for the three object kinds.
type (
	Node     = Typed[*osm.Node]
	Way      = Typed[*osm.Way]
	Relation = Typed[*osm.Relation]
)
