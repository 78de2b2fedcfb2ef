package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/bodgit/amaze/tile"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

type decoder struct {
	r     io.Reader
	order binary.ByteOrder

	tmp [wordSize]byte
}

func (d *decoder) readInt() (int32, error) {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return 0, err
	}
	return int32(d.order.Uint32(d.tmp[:])), nil
}

func (d *decoder) readFloat() (float32, error) {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(d.order.Uint32(d.tmp[:])), nil
}

func (d *decoder) readCount(what string) (int, error) {
	n, err := d.readInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s %d", ErrCorruptRecord, what, n)
	}
	return int(n), nil
}

func (d *decoder) readLines(n int) (tile.Geometry, error) {
	// Don't trust n for preallocation, it comes straight from the file
	var g tile.Geometry
	for i := 0; i < n; i++ {
		var v [lineValues]float32
		for j := range v {
			f, err := d.readFloat()
			if err != nil {
				return nil, err
			}
			v[j] = f
		}
		g = append(g, tile.Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]})
	}
	return g, nil
}

func (d *decoder) readRecord(c *tile.Collection) error {
	id, err := d.readInt()
	if err != nil {
		return err
	}
	if !tile.ID(id).Valid() {
		return fmt.Errorf("%w: tile id %d out of range", ErrCorruptRecord, id)
	}

	rotation, err := d.readInt()
	if err != nil {
		return err
	}

	n, err := d.readCount("line count")
	if err != nil {
		return err
	}

	g, err := d.readLines(n)
	if err != nil {
		return err
	}

	return c.Add(tile.ID(id), rotation, g)
}

func (d *decoder) decode(r io.Reader) (*tile.Collection, error) {
	d.r = r

	magic, err := d.readInt()
	if err != nil {
		return nil, err
	}
	variant, err := Validate(magic)
	if err != nil {
		return nil, err
	}

	n, err := d.readCount("tile count")
	if err != nil {
		return nil, err
	}

	// Build into a local collection so nothing is published on failure
	c := tile.NewCollection(variant == Played)
	for i := 0; i < n; i++ {
		if err := d.readRecord(c); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return c, nil
}

// Decode reads a maze file from r. Trailing data after the last record is
// ignored.
func Decode(r io.Reader) (*tile.Collection, error) {
	return DecodeOrder(r, byteOrder)
}

// DecodeOrder is like Decode but reads values in the given byte order.
func DecodeOrder(r io.Reader, order binary.ByteOrder) (*tile.Collection, error) {
	d := decoder{order: order}
	return d.decode(r)
}

// Open decodes the maze file at path. The file is closed before returning.
func Open(path string) (*tile.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
