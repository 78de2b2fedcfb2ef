/*
Package format implements the aMaze binary maze file decoder and encoder.

A file starts with a 32-bit magic value identifying it as either a fresh maze
or one saved after being played, followed by a 32-bit record count. Each
record is a tile ID, a raw rotation and a line count, all 32-bit integers,
followed by that many lines of four 32-bit floats: x1, y1, x2, y2. Integers
are two's complement and floats IEEE-754, both in big-endian byte order.
There is no checksum or padding.
*/
package format

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MagicFresh identifies a maze that has never been played.
	MagicFresh int32 = -0x35014111 // 0xcafebeef
	// MagicPlayed identifies a maze saved after being played.
	MagicPlayed int32 = -0x35012113 // 0xcafedeed
)

const (
	wordSize   = 4
	lineValues = 4
)

// byteOrder is the byte order of every integer and float in the file.
var byteOrder binary.ByteOrder = binary.BigEndian

var (
	// ErrTruncated is returned when the input ends part way through a value.
	ErrTruncated = errors.New("format: truncated input")
	// ErrInvalidFormat is returned when the magic value is not recognised.
	ErrInvalidFormat = errors.New("format: not a valid maze file")
	// ErrCorruptRecord is returned for negative counts or tile IDs outside
	// the valid range.
	ErrCorruptRecord = errors.New("format: corrupt record")
)

// Variant distinguishes fresh and played maze files.
type Variant int

const (
	// Fresh is a maze that has never been played.
	Fresh Variant = iota
	// Played is a maze saved after being played.
	Played
)

func (v Variant) String() string {
	switch v {
	case Fresh:
		return "fresh"
	case Played:
		return "played"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Magic returns the magic value written at the start of a file of variant v.
func (v Variant) Magic() int32 {
	if v == Played {
		return MagicPlayed
	}
	return MagicFresh
}

// Validate maps a magic value to its variant.
func Validate(magic int32) (Variant, error) {
	switch magic {
	case MagicFresh:
		return Fresh, nil
	case MagicPlayed:
		return Played, nil
	default:
		return 0, fmt.Errorf("%w: magic %#08x", ErrInvalidFormat, uint32(magic))
	}
}
