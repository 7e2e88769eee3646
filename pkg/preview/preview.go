// Package preview renders palette and colormap lumps as images for
// visual inspection. Every image is 16 swatches wide.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/Faultbox/doomcolors/pkg/dcolor"
)

// Columns is the number of swatches per image row.
const Columns = 16

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ErrUnknownFormat is returned for unsupported image formats.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Playpal draws every palette entry as one pixel, 16 per row. A full
// PLAYPAL gives a 16x224 image.
func Playpal(data []byte) *image.RGBA {
	rows := len(data) / (Columns * 3)
	img := image.NewRGBA(image.Rect(0, 0, Columns, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < Columns; x++ {
			off := (y*Columns + x) * 3
			img.SetRGBA(x, y, color.RGBA{data[off], data[off+1], data[off+2], 255})
		}
	}
	return img
}

// Colormap draws every colormap index as the color it selects from
// page of palette. A full COLORMAP gives a 16x544 image.
func Colormap(palette, colormap []byte, page int) (*image.RGBA, error) {
	start := page * dcolor.PaletteSize
	if page < 0 || start+dcolor.PaletteSize > len(palette) {
		return nil, fmt.Errorf("palette page %d not present in %d bytes", page, len(palette))
	}
	pal := palette[start : start+dcolor.PaletteSize]

	rows := len(colormap) / Columns
	img := image.NewRGBA(image.Rect(0, 0, Columns, rows))

	for y := 0; y < rows; y++ {
		for x := 0; x < Columns; x++ {
			off := int(colormap[y*Columns+x]) * 3
			img.SetRGBA(x, y, color.RGBA{pal[off], pal[off+1], pal[off+2], 255})
		}
	}
	return img, nil
}

// Scale enlarges img by an integer factor with nearest-neighbor sampling.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes img to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
