package osm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectType(t *testing.T) {
	tests := []struct {
		in      string
		want    ObjectType
		wantErr bool
	}{
		{"node", TypeNode, false},
		{"way", TypeWay, false},
		{"relation", TypeRelation, false},
		{"changeset", "", true},
		{"Node", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseObjectType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownObjectType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectInterface(t *testing.T) {
	info := Info{Version: 3, Changeset: 77, Timestamp: 1234, Visible: true, UID: 9, User: "mapper"}

	var o Object = &Node{ID: 42, Info: info, Lat: 51.5, Lon: -0.1}
	assert.Equal(t, TypeNode, o.ObjectType())
	assert.Equal(t, ObjectID(42), o.ObjectID())
	assert.Equal(t, uint32(3), o.ObjectInfo().Version)

	o = &Way{ID: 42, Info: info, Nodes: []ObjectID{1, 2, 3}}
	assert.Equal(t, TypeWay, o.ObjectType())

	o = &Relation{ID: 42, Info: info, Members: []Member{{Type: TypeNode, Ref: 1}}}
	assert.Equal(t, TypeRelation, o.ObjectType())
	assert.Equal(t, int64(77), o.ObjectInfo().Changeset)
}
