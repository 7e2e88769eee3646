// Package dcolor generates the PLAYPAL and COLORMAP color lumps used by
// the Doom engine.
package dcolor

import (
	"errors"
	"fmt"
)

// Layout constants for the generated lumps.
const (
	Colors      = 256
	PaletteSize = Colors * 3 // One page of RGB triples

	PlaypalPages = 14
	PlaypalSize  = PlaypalPages * PaletteSize

	ColormapPages = 34
	ColormapSize  = ColormapPages * Colors

	DarknessLevels      = 32
	InvulnerabilityPage = 32
	ReservedPage        = 33
)

// PLAYPAL page layout.
const (
	HurtStart      = 1  // 8 pages
	HurtPages      = 8
	PickupStart    = 9  // 4 pages
	PickupPages    = 4
	RadiationStart = 13 // 1 page
)

// ErrInvalidPaletteSize is returned when a base palette is shorter than one page.
var ErrInvalidPaletteSize = errors.New("invalid palette size")

// RGB is a working color. Channels are normally 0-255; target colors may
// use 256 as the legacy engine does for full intensity.
type RGB struct {
	R, G, B int
}

// String returns the color as "(r,g,b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb" with channels clamped to 0-255.
func (c RGB) Hex() string {
	c = c.Clamped()
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Clamped returns the color with every channel limited to 0-255.
func (c RGB) Clamped() RGB {
	return RGB{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Palette is the 256-color reference palette used for lookups.
type Palette [Colors]RGB

// NewPalette reads the first page of a PLAYPAL-style buffer.
// Additional pages are ignored.
func NewPalette(data []byte) (*Palette, error) {
	if len(data) < PaletteSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidPaletteSize, len(data), PaletteSize)
	}

	var p Palette
	for i := range p {
		off := i * 3
		p[i] = RGB{int(data[off]), int(data[off+1]), int(data[off+2])}
	}
	return &p, nil
}

// Bytes returns the palette as 768 bytes of RGB triples.
func (p *Palette) Bytes() []byte {
	out := make([]byte, PaletteSize)
	p.put(out)
	return out
}

func (p *Palette) put(dst []byte) {
	for i, c := range p {
		c = c.Clamped()
		off := i * 3
		dst[off] = uint8(c.R)
		dst[off+1] = uint8(c.G)
		dst[off+2] = uint8(c.B)
	}
}
