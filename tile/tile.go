/*
Package tile implements the in-memory model of an aMaze puzzle.

A maze is made of at most 32 tiles. Each tile has a fixed slot identity, which
is the position it occupies in the solved puzzle, a rotation of 0 to 3 quarter
turns and the line segments drawn on its face.
*/
package tile

import (
	"errors"
	"fmt"
)

// MaxTiles is the number of slots in a Collection.
const MaxTiles = 32

var (
	// ErrRotationUnset is returned when rotating a tile that has never been
	// given a rotation.
	ErrRotationUnset = errors.New("tile: rotation not set")
	// ErrInvalidRotation is returned for rotations outside 0 to 3.
	ErrInvalidRotation = errors.New("tile: invalid rotation")
	// ErrInvalidID is returned for tile IDs outside 0 to MaxTiles-1.
	ErrInvalidID = errors.New("tile: id out of range")
)

// ID is the slot identity of a tile, 0 to MaxTiles-1.
type ID int

// Valid reports whether id addresses a slot.
func (id ID) Valid() bool {
	return id >= 0 && id < MaxTiles
}

// Rotation is a number of clockwise quarter turns, 0 to 3.
type Rotation uint8

const numRotations = 4

// Valid reports whether r is one of the four rotations.
func (r Rotation) Valid() bool {
	return r < numRotations
}

// Next returns the rotation one quarter turn on from r, wrapping 3 to 0.
func (r Rotation) Next() Rotation {
	return (r + 1) % numRotations
}

// Line is a single stroke in a tile's local coordinate space.
type Line struct {
	X1, Y1, X2, Y2 float32
}

// Geometry is the set of strokes drawn on a tile's face.
type Geometry []Line

// Tile tracks a tile's identity, rotation and geometry for the lifetime of a
// game. It is not safe for concurrent use.
type Tile struct {
	id ID

	// set is false until the first SetRotation, at which point original
	// is captured and never changes again
	set      bool
	current  Rotation
	original Rotation

	geometry Geometry
}

// New returns a tile for slot id with no rotation and no geometry.
func New(id ID) *Tile {
	return &Tile{id: id}
}

// ID returns the slot the tile belongs to in the solved puzzle.
func (t *Tile) ID() ID {
	return t.id
}

// SetRotation sets the current rotation. The first call also records r as the
// original rotation.
func (t *Tile) SetRotation(r Rotation) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRotation, r)
	}
	if !t.set {
		t.original = r
		t.set = true
	}
	t.current = r
	return nil
}

// RotateTile advances the current rotation by one quarter turn.
func (t *Tile) RotateTile() error {
	if !t.set {
		return ErrRotationUnset
	}
	t.current = t.current.Next()
	return nil
}

// Rotation returns the current rotation and whether one has been set.
func (t *Tile) Rotation() (Rotation, bool) {
	return t.current, t.set
}

// OriginalRotation returns the rotation captured by the first SetRotation
// and whether it has happened yet.
func (t *Tile) OriginalRotation() (Rotation, bool) {
	return t.original, t.set
}

// Reset returns the tile to its original rotation. It is a no-op on a tile
// that has never been rotated.
func (t *Tile) Reset() {
	if t.set {
		t.current = t.original
	}
}

// SetGeometry replaces the tile's geometry with a copy of g.
func (t *Tile) SetGeometry(g Geometry) {
	t.geometry = append(Geometry(nil), g...)
}

// Geometry returns a copy of the tile's geometry.
func (t *Tile) Geometry() Geometry {
	return append(Geometry(nil), t.geometry...)
}
