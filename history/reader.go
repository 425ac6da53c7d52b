// Package history reads OpenStreetMap history files (.osh / .osm XML)
// into streams of versioned objects. The reader enforces the ordering
// contract the diff layer relies on: versions grouped by object, version
// numbers strictly increasing and timestamps non-decreasing within each
// group. Consumers can therefore feed a Reader straight into
// diff.NewIterator.
package history

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Sentinel errors for history streams. Wrapped with context; check with
// errors.Is.
var (
	// ErrBadOrder indicates the input violates the version-chain
	// ordering contract (versions out of order, timestamps going
	// backwards, or duplicate versions).
	ErrBadOrder = errors.New("history out of order")

	// ErrUnsupportedAPI indicates the file declares an OSM API version
	// this reader does not understand.
	ErrUnsupportedAPI = errors.New("unsupported OSM API version")
)

// supportedAPI gates the version attribute of the <osm> root element.
// The OSM API has been at 0.6 since 2009; anything else is either
// ancient or from the future, and the element semantics may differ.
var supportedAPI = semver.MustParse("0.6.0")

// Reader decodes one history file as a stream. It implements diff.Source.
type Reader struct {
	dec  *xml.Decoder
	last osm.Object // previous object, for order validation
	err  error      // sticky error
}

// NewReader creates a Reader over r. No data is read until Next is
// called.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next returns the next object version in document order, io.EOF at the
// end of the document, or an error describing why the stream is
// unusable. After a non-EOF error the reader stays in the error state.
func (r *Reader) Next() (osm.Object, error) {
	if r.err != nil {
		return nil, r.err
	}
	obj, err := r.next()
	if err != nil && err != io.EOF {
		r.err = err
	}
	return obj, err
}

func (r *Reader) next() (osm.Object, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "decode history XML")
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "osm":
			if err := checkAPIVersion(start); err != nil {
				return nil, err
			}
		case "node", "way", "relation":
			obj, err := r.decodeObject(start)
			if err != nil {
				return nil, err
			}
			if err := r.checkOrder(obj); err != nil {
				return nil, err
			}
			r.last = obj
			return obj, nil
		}
		// Anything else (bounds, changeset metadata) is skipped; the
		// decoder consumes unknown elements when we decode the next
		// known one.
	}
}

// checkAPIVersion validates the version attribute of the <osm> root.
// A missing attribute is tolerated: extracts produced by some tools omit
// it, and the element names disambiguate the format well enough.
func checkAPIVersion(start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local != "version" {
			continue
		}
		v, err := semver.NewVersion(attr.Value)
		if err != nil {
			return errors.Wrapf(ErrUnsupportedAPI, "unparseable version %q", attr.Value)
		}
		if v.Major() != supportedAPI.Major() || v.Minor() != supportedAPI.Minor() {
			return errors.Wrapf(ErrUnsupportedAPI, "%s (supported: %d.%d)",
				attr.Value, supportedAPI.Major(), supportedAPI.Minor())
		}
		return nil
	}
	return nil
}

// checkOrder enforces the chain ordering contract against the previous
// object. Only adjacent objects are compared: detecting an identity that
// reappears after an unrelated one would need per-identity state, which
// a streaming reader over planet-sized files cannot afford.
func (r *Reader) checkOrder(obj osm.Object) error {
	if r.last == nil {
		return nil
	}
	if r.last.ObjectType() != obj.ObjectType() || r.last.ObjectID() != obj.ObjectID() {
		return nil
	}
	prev, cur := r.last.ObjectInfo(), obj.ObjectInfo()
	if cur.Version <= prev.Version {
		return errors.Wrapf(ErrBadOrder, "%s %d: version %d after version %d",
			obj.ObjectType(), obj.ObjectID(), cur.Version, prev.Version)
	}
	if cur.Timestamp < prev.Timestamp {
		return errors.Wrapf(ErrBadOrder, "%s %d v%d: timestamp %s before %s",
			obj.ObjectType(), obj.ObjectID(), cur.Version, cur.Timestamp, prev.Timestamp)
	}
	return nil
}

// xmlTag, xmlNd and xmlMember mirror the child elements of object
// elements in OSM XML.
type xmlTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

type xmlNd struct {
	Ref int64 `xml:"ref,attr"`
}

type xmlMember struct {
	Type string `xml:"type,attr"`
	Ref  int64  `xml:"ref,attr"`
	Role string `xml:"role,attr"`
}

type xmlObject struct {
	ID        int64       `xml:"id,attr"`
	Version   uint32      `xml:"version,attr"`
	Changeset int64       `xml:"changeset,attr"`
	Timestamp string      `xml:"timestamp,attr"`
	Visible   string      `xml:"visible,attr"`
	UID       int64       `xml:"uid,attr"`
	User      string      `xml:"user,attr"`
	Lat       string      `xml:"lat,attr"`
	Lon       string      `xml:"lon,attr"`
	Tags      []xmlTag    `xml:"tag"`
	Nds       []xmlNd     `xml:"nd"`
	Members   []xmlMember `xml:"member"`
}

func (r *Reader) decodeObject(start xml.StartElement) (osm.Object, error) {
	var raw xmlObject
	if err := r.dec.DecodeElement(&raw, &start); err != nil {
		return nil, errors.Wrapf(err, "decode %s element", start.Name.Local)
	}

	info, err := raw.info()
	if err != nil {
		return nil, errors.Wrapf(err, "%s %d", start.Name.Local, raw.ID)
	}

	switch start.Name.Local {
	case "node":
		n := &osm.Node{ID: osm.ObjectID(raw.ID), Info: info, Tags: raw.tags()}
		// Deleted nodes carry no coordinates.
		if raw.Lat != "" {
			if n.Lat, err = strconv.ParseFloat(raw.Lat, 64); err != nil {
				return nil, errors.Wrapf(err, "node %d: bad lat", raw.ID)
			}
		}
		if raw.Lon != "" {
			if n.Lon, err = strconv.ParseFloat(raw.Lon, 64); err != nil {
				return nil, errors.Wrapf(err, "node %d: bad lon", raw.ID)
			}
		}
		return n, nil
	case "way":
		w := &osm.Way{ID: osm.ObjectID(raw.ID), Info: info, Tags: raw.tags()}
		for _, nd := range raw.Nds {
			w.Nodes = append(w.Nodes, osm.ObjectID(nd.Ref))
		}
		return w, nil
	case "relation":
		rel := &osm.Relation{ID: osm.ObjectID(raw.ID), Info: info, Tags: raw.tags()}
		for _, m := range raw.Members {
			mt, err := osm.ParseObjectType(m.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "relation %d: member", raw.ID)
			}
			rel.Members = append(rel.Members, osm.Member{Type: mt, Ref: osm.ObjectID(m.Ref), Role: m.Role})
		}
		return rel, nil
	}
	panic(errors.AssertionFailedf("decodeObject called for %q", start.Name.Local))
}

func (raw *xmlObject) info() (osm.Info, error) {
	ts, err := osm.ParseTimestamp(raw.Timestamp)
	if err != nil {
		return osm.Info{}, errors.Wrapf(err, "bad timestamp %q", raw.Timestamp)
	}
	// The visible attribute is only written for history files; plain
	// extracts omit it and every object in them is visible.
	visible := true
	if raw.Visible != "" {
		if visible, err = strconv.ParseBool(raw.Visible); err != nil {
			return osm.Info{}, errors.Wrapf(err, "bad visible attribute %q", raw.Visible)
		}
	}
	return osm.Info{
		Version:   raw.Version,
		Changeset: raw.Changeset,
		Timestamp: ts,
		Visible:   visible,
		UID:       raw.UID,
		User:      raw.User,
	}, nil
}

func (raw *xmlObject) tags() map[string]string {
	if len(raw.Tags) == 0 {
		return nil
	}
	tags := make(map[string]string, len(raw.Tags))
	for _, t := range raw.Tags {
		tags[t.K] = t.V
	}
	return tags
}

// ReadAll drains a reader into a slice. Intended for tests and small
// extracts; planet-scale files should stream through Next.
func ReadAll(r *Reader) ([]osm.Object, error) {
	var objs []osm.Object
	for {
		obj, err := r.Next()
		if err == io.EOF {
			return objs, nil
		}
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
}
