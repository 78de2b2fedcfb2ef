package format

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/bodgit/amaze/tile"
)

// Record is a single tile record as it appears in the file.
type Record struct {
	ID       tile.ID
	Rotation int32
	Lines    tile.Geometry
}

// Records rebuilds the records of c in read order by walking its rotations,
// line counts and endpoints in step.
func Records(c *tile.Collection) []Record {
	records := make([]Record, 0, c.Len())
	for i := tile.ReadPos(0); int(i) < c.Len(); i++ {
		p := c.Endpoints(i)
		var lines tile.Geometry
		for j := 0; j+lineValues <= len(p); j += lineValues {
			lines = append(lines, tile.Line{X1: p[j], Y1: p[j+1], X2: p[j+2], Y2: p[j+3]})
		}
		records = append(records, Record{
			ID:       c.IDAt(i),
			Rotation: c.RotationAt(i),
			Lines:    lines,
		})
	}
	return records
}

type encoder struct {
	w     io.Writer
	order binary.ByteOrder

	tmp [wordSize]byte
}

func (e *encoder) writeInt(v int32) error {
	e.order.PutUint32(e.tmp[:], uint32(v))
	_, err := e.w.Write(e.tmp[:])
	return err
}

func (e *encoder) writeFloat(v float32) error {
	e.order.PutUint32(e.tmp[:], math.Float32bits(v))
	_, err := e.w.Write(e.tmp[:])
	return err
}

func (e *encoder) encode(v Variant, records []Record) error {
	if len(records) > math.MaxInt32 {
		return fmt.Errorf("%w: too many records", ErrCorruptRecord)
	}
	for i, r := range records {
		if !r.ID.Valid() {
			return fmt.Errorf("record %d: %w: tile id %d out of range", i, ErrCorruptRecord, r.ID)
		}
		if len(r.Lines) > math.MaxInt32 {
			return fmt.Errorf("record %d: %w: too many lines", i, ErrCorruptRecord)
		}
	}

	if err := e.writeInt(v.Magic()); err != nil {
		return err
	}
	if err := e.writeInt(int32(len(records))); err != nil {
		return err
	}

	for _, r := range records {
		for _, i := range []int32{int32(r.ID), r.Rotation, int32(len(r.Lines))} {
			if err := e.writeInt(i); err != nil {
				return err
			}
		}
		for _, l := range r.Lines {
			for _, f := range [lineValues]float32{l.X1, l.Y1, l.X2, l.Y2} {
				if err := e.writeFloat(f); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Encode writes records to w as a maze file of variant v. Records are
// validated before anything is written.
func Encode(w io.Writer, v Variant, records []Record) error {
	return EncodeOrder(w, v, records, byteOrder)
}

// EncodeOrder is like Encode but writes values in the given byte order.
func EncodeOrder(w io.Writer, v Variant, records []Record, order binary.ByteOrder) error {
	e := encoder{w: w, order: order}
	return e.encode(v, records)
}

// Create writes records to a new maze file at path.
func Create(path string, v Variant, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b := bufio.NewWriter(f)
	if err := Encode(b, v, records); err != nil {
		return err
	}
	if err := b.Flush(); err != nil {
		return err
	}

	return f.Close()
}
