package tile

import "fmt"

// ReadPos is the position of a record in file order. It is distinct from ID:
// rotations and line counts are indexed by ReadPos, tiles by ID.
type ReadPos int

// Collection is the decoded form of a maze file.
type Collection struct {
	tiles [MaxTiles]*Tile

	// Indexed by ReadPos
	readOrder  []ID
	rotations  []int32
	lineCounts []int

	// Every coordinate of every line, in file order
	endpoints []float32

	played bool
}

// NewCollection returns an empty collection.
func NewCollection(played bool) *Collection {
	return &Collection{
		played: played,
	}
}

// Add appends a record to the collection. The tile at slot id has its
// geometry replaced, so a repeated id keeps the last geometry while both
// records remain in read order.
func (c *Collection) Add(id ID, rotation int32, g Geometry) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	t := c.tiles[id]
	if t == nil {
		t = New(id)
		c.tiles[id] = t
	}
	t.SetGeometry(g)

	c.readOrder = append(c.readOrder, id)
	c.rotations = append(c.rotations, rotation)
	c.lineCounts = append(c.lineCounts, len(g))
	for _, l := range g {
		c.endpoints = append(c.endpoints, l.X1, l.Y1, l.X2, l.Y2)
	}

	return nil
}

// Played reports whether the file was saved after being played.
func (c *Collection) Played() bool {
	return c.played
}

// Get returns the tile at slot id, or nil if no record populated it.
func (c *Collection) Get(id ID) *Tile {
	if !id.Valid() {
		return nil
	}
	return c.tiles[id]
}

// Tiles returns the populated tiles ordered by ID.
func (c *Collection) Tiles() []*Tile {
	var tiles []*Tile
	for _, t := range c.tiles {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Len returns the number of records, including any repeated IDs.
func (c *Collection) Len() int {
	return len(c.readOrder)
}

// IDAt returns the tile ID of the record at read position i. It panics if i
// is out of range, as do the other ReadPos accessors.
func (c *Collection) IDAt(i ReadPos) ID {
	return c.readOrder[i]
}

// RotationAt returns the raw rotation stored in the record at read position i.
func (c *Collection) RotationAt(i ReadPos) int32 {
	return c.rotations[i]
}

// LineCountAt returns the number of lines in the record at read position i.
func (c *Collection) LineCountAt(i ReadPos) int {
	return c.lineCounts[i]
}

// Endpoints returns a copy of the 4 * LineCountAt(i) coordinates of the
// record at read position i, in x1, y1, x2, y2 order.
func (c *Collection) Endpoints(i ReadPos) []float32 {
	var offset int
	for _, n := range c.lineCounts[:i] {
		offset += n
	}
	n := c.lineCounts[i]
	return append([]float32(nil), c.endpoints[offset*4:(offset+n)*4]...)
}

// NumEndpoints returns the length of the flattened endpoint list.
func (c *Collection) NumEndpoints() int {
	return len(c.endpoints)
}

// SeedRotations gives each tile the raw rotation from the record that names
// it, reduced modulo 4. Records are applied in read order, so for a repeated
// ID the first record fixes the original rotation and the last fixes the
// current one.
func (c *Collection) SeedRotations() error {
	for i, id := range c.readOrder {
		r := c.rotations[i] % numRotations
		if r < 0 {
			r += numRotations
		}
		if err := c.tiles[id].SetRotation(Rotation(r)); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns every tile to its original rotation.
func (c *Collection) Reset() {
	for _, t := range c.tiles {
		if t != nil {
			t.Reset()
		}
	}
}
