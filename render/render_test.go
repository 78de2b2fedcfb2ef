package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/bodgit/amaze/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func count(m *image.Paletted) (n int) {
	for _, p := range m.Pix {
		if p == foreground {
			n++
		}
	}
	return
}

func TestDrawLine(t *testing.T) {
	tables := []struct {
		x0, y0, x1, y1 int
		pixels         int
	}{
		{0, 0, 0, 0, 1},
		{0, 0, 9, 0, 10},
		{0, 9, 0, 0, 10},
		{0, 0, 9, 9, 10},
		{9, 0, 0, 9, 10},
		{0, 0, 9, 3, 10},
		{2, 7, 1, 0, 8},
	}

	for _, table := range tables {
		m := image.NewPaletted(image.Rect(0, 0, TileSize, TileSize), palette)
		drawLine(m, table.x0, table.y0, table.x1, table.y1)
		assert.Equal(t, table.pixels, count(m))
		assert.Equal(t, foreground, m.ColorIndexAt(table.x0, table.y0))
		assert.Equal(t, foreground, m.ColorIndexAt(table.x1, table.y1))
	}
}

func TestGeometry(t *testing.T) {
	m := Geometry(tile.Geometry{{X1: 0.9, Y1: 10.5, X2: 20.7, Y2: 10.2}}, 0)
	assert.Equal(t, image.Rect(0, 0, TileSize, TileSize), m.Bounds())
	assert.Equal(t, 21, count(m))
	assert.Equal(t, foreground, m.ColorIndexAt(0, 10))
	assert.Equal(t, foreground, m.ColorIndexAt(20, 10))
	assert.Equal(t, background, m.ColorIndexAt(0, 11))
}

func TestGeometryClipped(t *testing.T) {
	m := Geometry(tile.Geometry{{X1: -50, Y1: 5, X2: 150, Y2: 5}}, 0)
	assert.Equal(t, TileSize, count(m))
}

func TestGeometryOutOfRange(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tables := []struct {
		name   string
		line   tile.Line
		pixels int
	}{
		{"huge diagonal", tile.Line{X1: 0, Y1: 0, X2: 1e12, Y2: 1e12}, TileSize},
		{"huge both ends", tile.Line{X1: -3e38, Y1: 50, X2: 3e38, Y2: 50}, TileSize},
		{"huge outside", tile.Line{X1: 1e12, Y1: 1e12, X2: 2e12, Y2: 1e12}, 0},
		{"nan", tile.Line{X1: 0, Y1: 0, X2: nan, Y2: nan}, 0},
		{"inf", tile.Line{X1: 0, Y1: 50, X2: inf, Y2: 50}, 0},
		{"negative inf", tile.Line{X1: -inf, Y1: 0, X2: 10, Y2: 10}, 0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			for r := tile.Rotation(0); r < 4; r++ {
				assert.Equal(t, table.pixels, count(Geometry(tile.Geometry{table.line}, r)), "rotation %d", r)
			}
		})
	}
}

func TestClip(t *testing.T) {
	x0, y0, x1, y1, ok := clip(-50, 5, 150, 5)
	require.True(t, ok)
	assert.Equal(t, 0.0, x0)
	assert.Equal(t, 5.0, y0)
	assert.True(t, x1 < TileSize && x1 > TileSize-1)
	assert.Equal(t, 5.0, y1)

	x0, y0, x1, y1, ok = clip(10.5, 20.5, 30.5, 40.5)
	require.True(t, ok)
	assert.Equal(t, []float64{10.5, 20.5, 30.5, 40.5}, []float64{x0, y0, x1, y1})

	_, _, _, _, ok = clip(-10, -10, -1, 50)
	assert.False(t, ok)
	_, _, _, _, ok = clip(TileSize, 0, TileSize, 50)
	assert.False(t, ok)
}

func TestRotate(t *testing.T) {
	l := tile.Line{X1: 10, Y1: 0, X2: 10, Y2: 20}

	assert.Equal(t, l, rotate(l, 0))
	assert.Equal(t, tile.Line{X1: 100, Y1: 10, X2: 80, Y2: 10}, rotate(l, 1))
	assert.Equal(t, tile.Line{X1: 90, Y1: 100, X2: 90, Y2: 80}, rotate(l, 2))
	assert.Equal(t, tile.Line{X1: 0, Y1: 90, X2: 20, Y2: 90}, rotate(l, 3))
}

func TestTile(t *testing.T) {
	tl := tile.New(0)
	tl.SetGeometry(tile.Geometry{{X1: 10, Y1: 0, X2: 10, Y2: 20}})

	// Unset rotation draws as is
	assert.Equal(t, foreground, Tile(tl).ColorIndexAt(10, 0))

	require.Nil(t, tl.SetRotation(3))
	m := Tile(tl)
	assert.Equal(t, foreground, m.ColorIndexAt(0, 90))
	assert.Equal(t, background, m.ColorIndexAt(10, 0))
}

func TestBoard(t *testing.T) {
	c := tile.NewCollection(false)
	require.Nil(t, c.Add(3, 0, tile.Geometry{{X1: 0, Y1: 0, X2: 0, Y2: 0}}))
	require.Nil(t, c.Add(1, 0, tile.Geometry{{X1: 5, Y1: 5, X2: 5, Y2: 5}}))
	require.Nil(t, c.Add(3, 0, tile.Geometry{{X1: 1, Y1: 1, X2: 1, Y2: 1}}))
	require.Nil(t, c.Add(7, 0, nil))

	m := Board(c, 2)
	assert.Equal(t, image.Rect(0, 0, 2*TileSize, 2*TileSize), m.Bounds())
	assert.Equal(t, 2, count(m))
	assert.Equal(t, foreground, m.ColorIndexAt(1, 1))
	assert.Equal(t, foreground, m.ColorIndexAt(TileSize+5, 5))

	m = Board(tile.NewCollection(false), 0)
	assert.Equal(t, image.Rect(0, 0, DefaultColumns*TileSize, TileSize), m.Bounds())
}

func TestThumbnail(t *testing.T) {
	c := tile.NewCollection(false)
	require.Nil(t, c.Add(0, 0, tile.Geometry{{X1: 0, Y1: 0, X2: 99, Y2: 99}, {X1: 0, Y1: 50, X2: 99, Y2: 50}}))

	m := Thumbnail(c)
	assert.Equal(t, image.Rect(0, 0, DefaultColumns*TileSize/thumbnailScale, TileSize/thumbnailScale), m.Bounds())
	assert.True(t, len(m.Palette) <= thumbnailColors)

	b := new(bytes.Buffer)
	require.Nil(t, EncodeThumbnail(b, c))

	cfg, err := png.DecodeConfig(b)
	require.Nil(t, err)
	assert.Equal(t, m.Bounds().Dx(), cfg.Width)
	assert.Equal(t, m.Bounds().Dy(), cfg.Height)
}
