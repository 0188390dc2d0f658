// Package imageio converts linear radiance images into 8-bit pictures and
// writes them to local or cloud storage.
package imageio

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output formats without an encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an output encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat normalizes a user-supplied format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q has no extension", path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for f, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for f
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// ToRGBA gamma-encodes img with gamma 2 and quantizes it to 8 bits. Image row
// 0 is the bottom row, so rows are flipped to put it last.
func ToRGBA(img *renderer.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		row := img.Height - 1 - y
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, row, toRGBA8(img.ColorAt(x, y)))
		}
	}
	return out
}

func toRGBA8(c core.Vec3) color.RGBA {
	g := c.Sqrt()
	return color.RGBA{
		R: quantize(g.X),
		G: quantize(g.Y),
		B: quantize(g.Z),
		A: 255,
	}
}

// quantize maps [0, 1] to [0, 255]; NaN is black
func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255.99 * v)
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	rgba := ToRGBA(img)

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, rgba)
	case FormatBMP:
		err = bmp.Encode(w, rgba)
	case FormatTIFF:
		err = tiff.Encode(w, rgba, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return errors.Wrapf(err, "encoding %s", format)
}
