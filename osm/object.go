// Package osm holds the object model for versioned OpenStreetMap data:
// nodes, ways and relations together with the versioning metadata
// (version, changeset, timestamp, visible flag) that history files carry
// for every object version.
//
// One value of *Node, *Way or *Relation represents exactly one version of
// one object. The full edit history of an object is a sequence of such
// values with the same ID and strictly increasing versions — the diff
// package works on those sequences.
package osm

// Info holds the versioning metadata common to all object kinds.
//
// Visible is false for versions that represent a deletion. Deleted
// versions carry no payload (coordinates, node refs, members) but keep
// their identity and versioning fields.
type Info struct {
	Version   uint32
	Changeset int64
	Timestamp Timestamp
	Visible   bool
	UID       int64
	User      string
}

// Object is the read-only view of one version of a map object.
// It is implemented by *Node, *Way and *Relation.
//
// Code that holds Objects must not mutate them; everything downstream
// (the diff layer in particular) treats them as immutable and is safe for
// concurrent reads only under that assumption.
type Object interface {
	ObjectType() ObjectType
	ObjectID() ObjectID
	ObjectInfo() *Info
}

// Node is a single point, defined by latitude and longitude in degrees.
type Node struct {
	ID   ObjectID
	Info Info
	Tags map[string]string
	Lat  float64
	Lon  float64
}

func (n *Node) ObjectType() ObjectType { return TypeNode }
func (n *Node) ObjectID() ObjectID     { return n.ID }
func (n *Node) ObjectInfo() *Info      { return &n.Info }

// Way is an ordered list of node references forming a polyline or area.
type Way struct {
	ID    ObjectID
	Info  Info
	Tags  map[string]string
	Nodes []ObjectID
}

func (w *Way) ObjectType() ObjectType { return TypeWay }
func (w *Way) ObjectID() ObjectID     { return w.ID }
func (w *Way) ObjectInfo() *Info      { return &w.Info }

// Member is one entry in a relation's member list.
type Member struct {
	Type ObjectType
	Ref  ObjectID
	Role string
}

// Relation groups nodes, ways and other relations into a larger structure.
type Relation struct {
	ID      ObjectID
	Info    Info
	Tags    map[string]string
	Members []Member
}

func (r *Relation) ObjectType() ObjectType { return TypeRelation }
func (r *Relation) ObjectID() ObjectID     { return r.ID }
func (r *Relation) ObjectInfo() *Info      { return &r.Info }
