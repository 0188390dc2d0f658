package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Image is a row-major buffer of linear radiance values. Row 0 is the bottom
// row of the picture, matching film coordinate v = 0.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// ColorAt returns the pixel at column x, row y
func (img *Image) ColorAt(x, y int) core.Vec3 {
	return img.Pixels[img.index(x, y)]
}

// SetColorAt stores the pixel at column x, row y
func (img *Image) SetColorAt(x, y int, c core.Vec3) {
	img.Pixels[img.index(x, y)] = c
}

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) outside %dx%d image", x, y, img.Width, img.Height))
	}
	return y*img.Width + x
}
