package tile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	c := NewCollection(false)
	require.Nil(t, c.Add(9, 1, Geometry{{0, 0, 1, 1}, {2, 2, 3, 3}}))
	require.Nil(t, c.Add(2, 3, nil))
	require.Nil(t, c.Add(4, 0, Geometry{{4, 5, 6, 7}}))

	assert.False(t, c.Played())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 12, c.NumEndpoints())

	assert.Equal(t, ID(9), c.IDAt(0))
	assert.Equal(t, ID(2), c.IDAt(1))
	assert.Equal(t, int32(3), c.RotationAt(1))
	assert.Equal(t, 0, c.LineCountAt(1))

	assert.Equal(t, []float32{0, 0, 1, 1, 2, 2, 3, 3}, c.Endpoints(0))
	assert.Empty(t, c.Endpoints(1))
	assert.Equal(t, []float32{4, 5, 6, 7}, c.Endpoints(2))

	assert.Nil(t, c.Get(0))
	assert.Nil(t, c.Get(-1))
	assert.Nil(t, c.Get(MaxTiles))
	require.NotNil(t, c.Get(9))
	assert.Equal(t, Geometry{{0, 0, 1, 1}, {2, 2, 3, 3}}, c.Get(9).Geometry())

	var ids []ID
	for _, tile := range c.Tiles() {
		ids = append(ids, tile.ID())
	}
	assert.Equal(t, []ID{2, 4, 9}, ids)
}

func TestCollectionAddOutOfRange(t *testing.T) {
	c := NewCollection(false)
	assert.True(t, errors.Is(c.Add(MaxTiles, 0, nil), ErrInvalidID))
	assert.True(t, errors.Is(c.Add(-1, 0, nil), ErrInvalidID))
	assert.Equal(t, 0, c.Len())
}

func TestCollectionDuplicateID(t *testing.T) {
	c := NewCollection(true)
	require.Nil(t, c.Add(5, 1, Geometry{{0, 0, 1, 1}}))
	require.Nil(t, c.Add(5, 2, Geometry{{8, 8, 9, 9}, {1, 2, 3, 4}}))

	assert.True(t, c.Played())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, ID(5), c.IDAt(0))
	assert.Equal(t, ID(5), c.IDAt(1))
	assert.Equal(t, 1, c.LineCountAt(0))
	assert.Equal(t, 2, c.LineCountAt(1))
	assert.Equal(t, Geometry{{8, 8, 9, 9}, {1, 2, 3, 4}}, c.Get(5).Geometry())
	assert.Len(t, c.Tiles(), 1)

	require.Nil(t, c.SeedRotations())
	r, _ := c.Get(5).Rotation()
	o, _ := c.Get(5).OriginalRotation()
	assert.Equal(t, Rotation(2), r)
	assert.Equal(t, Rotation(1), o)
}

func TestSeedRotations(t *testing.T) {
	c := NewCollection(false)
	require.Nil(t, c.Add(0, 3, nil))
	require.Nil(t, c.Add(1, 6, nil))
	require.Nil(t, c.Add(2, -1, nil))
	require.Nil(t, c.SeedRotations())

	for id, want := range map[ID]Rotation{0: 3, 1: 2, 2: 3} {
		r, ok := c.Get(id).Rotation()
		assert.True(t, ok)
		assert.Equal(t, want, r, "tile %d", id)
	}

	require.Nil(t, c.Get(0).RotateTile())
	require.Nil(t, c.Get(1).RotateTile())
	c.Reset()

	r, _ := c.Get(0).Rotation()
	assert.Equal(t, Rotation(3), r)
	r, _ = c.Get(1).Rotation()
	assert.Equal(t, Rotation(2), r)

	// Raw values are untouched
	assert.Equal(t, int32(6), c.RotationAt(1))
	assert.Equal(t, int32(-1), c.RotationAt(2))
}
