package osm

import (
	"math"
	"time"
)

// Timestamp is a point in time with second resolution, stored as seconds
// since the Unix epoch. OSM data carries timestamps in UTC; comparisons
// are plain integer comparisons, so ordering over Timestamps is total.
type Timestamp int64

// EndOfTime is the sentinel returned as the end of the validity interval
// of an object version that has not been superseded yet. It is
// math.MaxInt64 and therefore strictly greater than every timestamp that
// can appear in real data. The value is stable; downstream code may
// compare against it directly.
const EndOfTime Timestamp = math.MaxInt64

// NewTimestamp converts a time.Time, truncating to second resolution.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// ParseTimestamp parses an ISO 8601 / RFC 3339 timestamp as used in OSM
// XML, e.g. "2012-03-15T12:34:56Z".
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return NewTimestamp(t), nil
}

// Time converts the timestamp back into a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsEndOfTime reports whether this is the EndOfTime sentinel.
func (t Timestamp) IsEndOfTime() bool {
	return t == EndOfTime
}

// String renders the timestamp in RFC 3339 format. The EndOfTime sentinel
// renders as "end-of-time" because it has no calendar representation.
func (t Timestamp) String() string {
	if t.IsEndOfTime() {
		return "end-of-time"
	}
	return t.Time().Format(time.RFC3339)
}
