package osm

import (
	"github.com/osmworks/osmh/errors"
)

// ObjectType identifies the kind of a map object. The values match the
// element names used in OSM XML, so parsed elements map directly.
type ObjectType string

const (
	TypeNode     ObjectType = "node"
	TypeWay      ObjectType = "way"
	TypeRelation ObjectType = "relation"
)

// ErrUnknownObjectType is returned when a type tag is none of node, way,
// or relation. Wrap it with context; check with errors.Is.
var ErrUnknownObjectType = errors.New("unknown object type")

// ParseObjectType converts an element name into an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch s {
	case "node":
		return TypeNode, nil
	case "way":
		return TypeWay, nil
	case "relation":
		return TypeRelation, nil
	default:
		return "", errors.Wrapf(ErrUnknownObjectType, "%q", s)
	}
}

// ObjectID is the numeric ID of a map object. IDs are only unique within
// one object type; (ObjectType, ObjectID) identifies an object.
type ObjectID int64
