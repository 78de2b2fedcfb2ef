/*
Package render rasterizes maze tiles.

Each tile is drawn on a TileSize by TileSize canvas with a white background and
black one pixel strokes. Line coordinates are truncated towards zero before
drawing and anything outside the canvas is clipped.
*/
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/bodgit/amaze/tile"
)

// TileSize is the width and height in pixels of a rendered tile.
const TileSize = 100

const (
	background uint8 = iota
	foreground
)

var palette = color.Palette{color.White, color.Black}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Bresenham, all octants
func drawLine(m *image.Paletted, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		m.SetColorIndex(x0, y0, foreground)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// rotate turns l clockwise about the centre of the tile by r quarter turns
func rotate(l tile.Line, r tile.Rotation) tile.Line {
	for i := tile.Rotation(0); i < r; i++ {
		l = tile.Line{
			X1: TileSize - l.Y1, Y1: l.X1,
			X2: TileSize - l.Y2, Y2: l.X2,
		}
	}
	return l
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// clip cuts the segment down to the part inside [0, TileSize) on both axes
// using Liang-Barsky. It returns false if nothing of the segment is inside.
func clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	if !finite(x0, y0, x1, y1) {
		return 0, 0, 0, 0, false
	}

	hi := math.Nextafter(TileSize, 0)
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, e := range [...]struct{ p, q float64 }{
		{-dx, x0},
		{dx, hi - x0},
		{-dy, y0},
		{dy, hi - y0},
	} {
		if e.p == 0 {
			if e.q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := e.q / e.p
		if e.p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	// Leave endpoints already inside untouched
	cx0, cy0, cx1, cy1 := x0, y0, x1, y1
	if t0 > 0 {
		cx0, cy0 = x0+t0*dx, y0+t0*dy
	}
	if t1 < 1 {
		cx1, cy1 = x0+t1*dx, y0+t1*dy
	}

	return clamp(cx0), clamp(cy0), clamp(cx1), clamp(cy1), true
}

// Rounding in clip can land a hair outside the canvas
func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, math.Nextafter(TileSize, 0)))
}

// Geometry draws g onto a new tile canvas turned by r quarter turns. Lines
// with a NaN or infinite coordinate are skipped.
func Geometry(g tile.Geometry, r tile.Rotation) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, TileSize, TileSize), palette)
	for _, l := range g {
		l = rotate(l, r)
		x0, y0, x1, y1, ok := clip(float64(l.X1), float64(l.Y1), float64(l.X2), float64(l.Y2))
		if !ok {
			continue
		}
		drawLine(m, int(x0), int(y0), int(x1), int(y1))
	}
	return m
}

// Tile draws t at its current rotation, or unrotated if it has none.
func Tile(t *tile.Tile) *image.Paletted {
	r, _ := t.Rotation()
	return Geometry(t.Geometry(), r)
}
