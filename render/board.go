package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/bodgit/amaze/tile"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// DefaultColumns is the number of tiles per row used by Thumbnail
	DefaultColumns  = 8
	thumbnailScale  = 4
	thumbnailColors = 16
)

// distinct returns each tile once, in the order it is first read
func distinct(c *tile.Collection) []*tile.Tile {
	seen := make(map[tile.ID]struct{})
	var tiles []*tile.Tile
	for i := tile.ReadPos(0); int(i) < c.Len(); i++ {
		id := c.IDAt(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		tiles = append(tiles, c.Get(id))
	}
	return tiles
}

// Board draws every tile in c at its current rotation, laid out in read order
// with columns tiles per row. An empty collection produces a single blank
// row.
func Board(c *tile.Collection, columns int) *image.Paletted {
	if columns < 1 {
		columns = DefaultColumns
	}

	tiles := distinct(c)
	rows := (len(tiles) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}

	m := image.NewPaletted(image.Rect(0, 0, columns*TileSize, rows*TileSize), palette)
	for i, t := range tiles {
		x, y := i%columns*TileSize, i/columns*TileSize
		draw.Draw(m, image.Rect(x, y, x+TileSize, y+TileSize), Tile(t), image.Point{}, draw.Src)
	}

	return m
}

// Scale down by averaging each thumbnailScale square block of pixels
func shrink(m image.Image) *image.Gray {
	b := m.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx()/thumbnailScale, b.Dy()/thumbnailScale))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			var sum uint32
			for dy := 0; dy < thumbnailScale; dy++ {
				for dx := 0; dx < thumbnailScale; dx++ {
					g := color.GrayModel.Convert(m.At(b.Min.X+x*thumbnailScale+dx, b.Min.Y+y*thumbnailScale+dy)).(color.Gray)
					sum += uint32(g.Y)
				}
			}
			out.SetGray(x, y, color.Gray{Y: uint8(sum / (thumbnailScale * thumbnailScale))})
		}
	}
	return out
}

// Thumbnail returns a reduced size board with at most 16 colors.
func Thumbnail(c *tile.Collection) *image.Paletted {
	g := shrink(Board(c, DefaultColumns))
	b := g.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, thumbnailColors), g))
	draw.Draw(pm, b, g, b.Min, draw.Src)

	return pm
}

// EncodeThumbnail writes the thumbnail of c to w as a PNG.
func EncodeThumbnail(w io.Writer, c *tile.Collection) error {
	return png.Encode(w, Thumbnail(c))
}
