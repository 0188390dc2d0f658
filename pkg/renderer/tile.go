package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultTileSize is the edge length of a square render tile
const DefaultTileSize = 32

// Tile is a rectangular region of the image rendered by one task into its own buffer
type Tile struct {
	ID     int
	Bounds image.Rectangle // Pixel bounds in image coordinates
	Pixels []core.Vec3     // Row-major buffer local to the tile
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Pixels: make([]core.Vec3, bounds.Dx()*bounds.Dy()),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// set stores a pixel given in image coordinates
func (t *Tile) set(x, y int, c core.Vec3) {
	t.Pixels[(y-t.Bounds.Min.Y)*t.Bounds.Dx()+(x-t.Bounds.Min.X)] = c
}

// CopyTo writes the tile buffer into its region of img
func (t *Tile) CopyTo(img *Image) {
	width := t.Bounds.Dx()
	for y := t.Bounds.Min.Y; y < t.Bounds.Max.Y; y++ {
		row := t.Pixels[(y-t.Bounds.Min.Y)*width : (y-t.Bounds.Min.Y+1)*width]
		start := y*img.Width + t.Bounds.Min.X
		copy(img.Pixels[start:start+width], row)
	}
}
